package sink

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"dlc-rules/rule"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite SQLite 键值输出端，表 data(domain 主键, rule)
type SQLite struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

// NewSQLite 打开（必要时创建）数据库并开启事务
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(dbPath, "rwc"))
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	// SQLite 只支持单个写连接
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("开启事务失败: %w", err)
	}

	stmt, err := tx.Prepare("REPLACE INTO data VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("预编译语句失败: %w", err)
	}

	return &SQLite{db: db, tx: tx, stmt: stmt}, nil
}

// sqliteDSN 构造 URI 形式的连接串，路径中的 ? # % 等字符被转义
func sqliteDSN(dbPath, mode string) string {
	return "file:" + (&url.URL{Path: dbPath}).EscapedPath() + "?mode=" + mode
}

// createTables 创建数据表
func createTables(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS data (
		domain TEXT NOT NULL PRIMARY KEY,
		rule TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("创建表失败: %w", err)
	}
	return nil
}

// Write 写入或替换记录
func (s *SQLite) Write(rec rule.Record) error {
	if s.tx == nil {
		return fmt.Errorf("事务已提交")
	}
	if _, err := s.stmt.Exec(rec.Domain, string(rec.Action)); err != nil {
		return fmt.Errorf("写入数据库失败: %w", err)
	}
	return nil
}

// Commit 提交本次运行的全部写入
func (s *SQLite) Commit() error {
	if s.tx == nil {
		return nil
	}
	stmtErr := s.stmt.Close()
	err := s.tx.Commit()
	s.tx, s.stmt = nil, nil
	if err != nil {
		return errors.Join(fmt.Errorf("提交事务失败: %w", err), stmtErr)
	}
	if stmtErr != nil {
		return fmt.Errorf("关闭语句失败: %w", stmtErr)
	}
	return nil
}

// Close 关闭数据库，未提交的写入被回滚
func (s *SQLite) Close() error {
	var errs []error
	if s.tx != nil {
		errs = append(errs, s.stmt.Close())
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, fmt.Errorf("回滚事务失败: %w", err))
		}
		s.tx, s.stmt = nil, nil
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}

// ReadSQLite 以只读方式读取全部记录
func ReadSQLite(dbPath string) ([]rule.Record, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(dbPath, "ro"))
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT domain, rule FROM data")
	if err != nil {
		return nil, fmt.Errorf("查询数据库失败: %w", err)
	}
	defer rows.Close()

	var records []rule.Record
	for rows.Next() {
		var domain, action string
		if err := rows.Scan(&domain, &action); err != nil {
			return nil, fmt.Errorf("读取记录失败: %w", err)
		}
		records = append(records, rule.Record{Domain: domain, Action: rule.Action(action)})
	}
	return records, rows.Err()
}
