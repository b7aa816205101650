package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwantia/kvfs/data"
)

type directoryEntries struct {
	Subdirectories map[data.Inode]data.Subdirectory `json:"subdirectories"`
	Files          map[data.Inode]string            `json:"files"`
}

func (sb *SQLiteBackend) conn() (*sql.DB, error) {
	if sb.db == nil {
		return nil, fmt.Errorf("sqlite: backend not opened")
	}
	return sb.db, nil
}

func (sb *SQLiteBackend) LoadDirectory(ctx context.Context, ino data.Inode) (*data.Directory, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	db, err := sb.conn()
	if err != nil {
		return nil, err
	}

	var name, entriesJSON string
	var parent int64
	err = db.QueryRowContext(ctx, `
		SELECT name, parent, entries FROM directories WHERE ino = ?
	`, int64(ino)).Scan(&name, &parent, &entriesJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	var entries directoryEntries
	if err := json.Unmarshal([]byte(entriesJSON), &entries); err != nil {
		return nil, fmt.Errorf("sqlite: failed to decode entries of directory %d: %w", ino, err)
	}

	dir := data.NewDirectory(name, data.Inode(parent))
	for k, v := range entries.Subdirectories {
		dir.Subdirectories[k] = v
	}
	for k, v := range entries.Files {
		dir.Files[k] = v
	}

	return dir, nil
}

func (sb *SQLiteBackend) StoreDirectory(ctx context.Context, ino data.Inode, dir *data.Directory) error {
	if dir == nil {
		return data.ErrInvalid
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	db, err := sb.conn()
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(directoryEntries{
		Subdirectories: dir.Subdirectories,
		Files:          dir.Files,
	})
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO directories (ino, name, parent, entries)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ino) DO UPDATE SET
			name = excluded.name,
			parent = excluded.parent,
			entries = excluded.entries
	`, int64(ino), dir.Name, int64(dir.Parent), string(bytes))

	return err
}

func (sb *SQLiteBackend) DeleteDirectory(ctx context.Context, ino data.Inode) error {
	return sb.deleteRow(ctx, "DELETE FROM directories WHERE ino = ?", ino)
}

func (sb *SQLiteBackend) Directories(ctx context.Context) ([]data.Inode, error) {
	return sb.listInodes(ctx, "SELECT ino FROM directories ORDER BY ino")
}

func (sb *SQLiteBackend) LoadFile(ctx context.Context, ino data.Inode) (*data.File, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	db, err := sb.conn()
	if err != nil {
		return nil, err
	}

	file := &data.File{}
	err = db.QueryRowContext(ctx, `
		SELECT name, content FROM files WHERE ino = ?
	`, int64(ino)).Scan(&file.Name, &file.Content)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, data.ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	if file.Content == nil {
		file.Content = make([]byte, 0)
	}
	return file, nil
}

func (sb *SQLiteBackend) StoreFile(ctx context.Context, ino data.Inode, file *data.File) error {
	if file == nil {
		return data.ErrInvalid
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	db, err := sb.conn()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO files (ino, name, content)
		VALUES (?, ?, ?)
		ON CONFLICT(ino) DO UPDATE SET
			name = excluded.name,
			content = excluded.content
	`, int64(ino), file.Name, file.Content)

	return err
}

func (sb *SQLiteBackend) DeleteFile(ctx context.Context, ino data.Inode) error {
	return sb.deleteRow(ctx, "DELETE FROM files WHERE ino = ?", ino)
}

func (sb *SQLiteBackend) Files(ctx context.Context) ([]data.Inode, error) {
	return sb.listInodes(ctx, "SELECT ino FROM files ORDER BY ino")
}

func (sb *SQLiteBackend) deleteRow(ctx context.Context, query string, ino data.Inode) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	db, err := sb.conn()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, query, int64(ino))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return data.ErrNotExist
	}
	return nil
}

func (sb *SQLiteBackend) listInodes(ctx context.Context, query string) ([]data.Inode, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	db, err := sb.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inodes := make([]data.Inode, 0)
	for rows.Next() {
		var ino int64
		if err := rows.Scan(&ino); err != nil {
			return nil, err
		}
		inodes = append(inodes, data.Inode(ino))
	}

	return inodes, rows.Err()
}
