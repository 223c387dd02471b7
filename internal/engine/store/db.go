// Package store persists transcript chunks with their embeddings and serves
// similarity search over them. The backing file is a single SQLite database;
// vectors are stored as little-endian float32 blobs and scanned brute-force,
// which is plenty for the corpus sizes a conversation touches.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Embedder turns texts into dense vectors. Implemented by OpenAIEmbedder;
// tests substitute a deterministic fake.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// DB is a chunk store over a single SQLite file.
type DB struct {
	conn     *sql.DB
	embedder Embedder
}

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	metadata   TEXT NOT NULL DEFAULT '{}',
	embedding  BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the chunk store at path.
func Open(path string, embedder Embedder) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn, embedder: embedder}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.conn.Close()
}

// AddTexts embeds and stores texts with their metadata. metadatas may be nil
// or shorter than texts; missing entries store as empty objects.
func (d *DB) AddTexts(ctx context.Context, texts []string, metadatas []map[string]any) error {
	if len(texts) == 0 {
		return nil
	}
	vectors, err := d.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, content, metadata, embedding, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, text := range texts {
		meta := map[string]any{}
		if i < len(metadatas) && metadatas[i] != nil {
			meta = metadatas[i]
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(), text, string(metaJSON), encodeVector(vectors[i]), now); err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
	}
	return tx.Commit()
}

// Scored is one retrieved chunk with its similarity score. HasScore is false
// for backends that return unscored results; such documents are treated as
// relevant by the retrieval filter.
type Scored struct {
	Content  string
	Metadata map[string]any
	Score    float64
	HasScore bool
}

// Search embeds the query and returns the topK most similar chunks by cosine
// similarity, best first.
func (d *DB) Search(ctx context.Context, query string, topK int) ([]Scored, error) {
	if topK <= 0 {
		topK = 5
	}
	vectors, err := d.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := vectors[0]

	rows, err := d.conn.QueryContext(ctx, `SELECT content, metadata, embedding FROM chunks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Scored
	for rows.Next() {
		var content, metaJSON string
		var blob []byte
		if err := rows.Scan(&content, &metaJSON, &blob); err != nil {
			return nil, err
		}
		var meta map[string]any
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			meta = map[string]any{}
		}
		results = append(results, Scored{
			Content:  content,
			Metadata: meta,
			Score:    cosineSimilarity(qv, decodeVector(blob)),
			HasScore: true,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of stored chunks.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

var db *DB

// SetDB installs the process-wide chunk store. Called once from main.
func SetDB(d *DB) { db = d }

// GetDB returns the process-wide chunk store.
func GetDB() *DB { return db }
