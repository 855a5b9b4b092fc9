package datarecording

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/tebeka/atexit"
)

// ClickHouseRecorder is a DataRecorder that writes into a ClickHouse server.
type ClickHouseRecorder struct {
	conn       clickhouse.Conn
	tables     map[string]*table
	batchSize  int
	entryCount int
}

// NewClickHouseRecorder connects to the server named by the DSN, for example
// clickhouse://localhost:9000/pagesim?username=default.
func NewClickHouseRecorder(dsn string) (*ClickHouseRecorder, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing ClickHouse DSN: %w", err)
	}

	opts.DialTimeout = 10 * time.Second

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	err = conn.Ping(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	r := &ClickHouseRecorder{
		conn:      conn,
		tables:    make(map[string]*table),
		batchSize: 100000,
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

// CreateTable creates a MergeTree table if it does not exist yet.
func (r *ClickHouseRecorder) CreateTable(tableName string, sampleEntry any) {
	createSQL, err := clickHouseCreateTableSQL(tableName, sampleEntry)
	if err != nil {
		panic(err)
	}

	err = r.conn.Exec(context.Background(), createSQL)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
	}
}

// InsertData buffers the entry until the next flush.
func (r *ClickHouseRecorder) InsertData(tableName string, entry any) {
	table, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry type %T does not match table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	r.entryCount++
	if r.entryCount >= r.batchSize {
		r.Flush()
	}
}

// ListTables returns the names of the tables created by the recorder.
func (r *ClickHouseRecorder) ListTables() []string {
	tables := make([]string, 0, len(r.tables))
	for table := range r.tables {
		tables = append(tables, table)
	}

	return tables
}

// Flush sends one batch per table.
func (r *ClickHouseRecorder) Flush() {
	if r.entryCount == 0 {
		return
	}

	ctx := context.Background()

	for tableName, table := range r.tables {
		if len(table.entries) == 0 {
			continue
		}

		batch, err := r.conn.PrepareBatch(ctx, "INSERT INTO "+tableName)
		if err != nil {
			panic(fmt.Errorf("failed to prepare batch for %s: %w", tableName, err))
		}

		for _, entry := range table.entries {
			err = batch.Append(clickHouseRow(entry)...)
			if err != nil {
				panic(fmt.Errorf("failed to append to batch: %w", err))
			}
		}

		err = batch.Send()
		if err != nil {
			panic(fmt.Errorf("failed to send batch: %w", err))
		}

		table.entries = nil
	}

	r.entryCount = 0
}

// Close flushes remaining data and closes the connection.
func (r *ClickHouseRecorder) Close() error {
	r.Flush()

	err := r.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}

	return nil
}

func clickHouseColumnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "Bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Int64"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return "UInt64"
	case reflect.Float32, reflect.Float64:
		return "Float64"
	default:
		return "String"
	}
}

func clickHouseCreateTableSQL(tableName string, sampleEntry any) (string, error) {
	err := checkStructFields(sampleEntry)
	if err != nil {
		return "", err
	}

	types := reflect.TypeOf(sampleEntry)

	columns := make([]string, 0, types.NumField())
	for i := 0; i < types.NumField(); i++ {
		field := types.Field(i)
		columns = append(columns,
			field.Name+" "+clickHouseColumnType(field.Type.Kind()))
	}

	return "CREATE TABLE IF NOT EXISTS " + tableName + " (\n\t" +
		strings.Join(columns, ",\n\t") +
		"\n) ENGINE = MergeTree()\nORDER BY tuple()", nil
}

// clickHouseRow widens the fields to the column types of
// clickHouseColumnType.
func clickHouseRow(entry any) []any {
	values := reflect.ValueOf(entry)

	row := make([]any, values.NumField())
	for i := range row {
		v := values.Field(i)

		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			row[i] = v.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64:
			row[i] = v.Uint()
		case reflect.Float32, reflect.Float64:
			row[i] = v.Float()
		default:
			row[i] = v.Interface()
		}
	}

	return row
}
