package review

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/arch-atlas/pkg/models/store"
)

// ErrNotFound is returned when no entry exists for the requested review.
var ErrNotFound = fmt.Errorf("review not found")

// Store persists review entries keyed by (review_id, ts). Historical
// entries are append-only; mutations always target the latest ts for a
// review_id.
type Store interface {
	Create(ctx context.Context, rec store.Review) error
	GetLatest(ctx context.Context, reviewID string) (*store.Review, error)
	List(ctx context.Context, limit int, pageToken string) ([]store.Review, string, error)
	UpdateStatus(ctx context.Context, reviewID string, status string, errorMessage *string) error
	SaveResults(ctx context.Context, reviewID string, findings []store.Finding, recs []store.Recommendation, score float64) error
}

type reviewStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reviewStore{db: db, now: time.Now}, nil
}

func (s *reviewStore) Create(ctx context.Context, rec store.Review) error {
	pillars, err := json.Marshal(rec.Pillars)
	if err != nil {
		return fmt.Errorf("marshal pillars: %w", err)
	}

	query := `
		INSERT INTO reviews (
			review_id, ts, status, aws_account_id, region, pillars,
			findings, recommendations, score, error_message, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		rec.ReviewID,
		rec.Timestamp,
		rec.Status,
		rec.AWSAccountID,
		rec.Region,
		string(pillars),
		"[]",
		"[]",
		nullFloat(rec.Score),
		nullString(rec.ErrorMessage),
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

const reviewColumns = `review_id, ts, status, aws_account_id, region, pillars,
		findings, recommendations, score, error_message, created_at, updated_at`

func (s *reviewStore) GetLatest(ctx context.Context, reviewID string) (*store.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE review_id = ?
		ORDER BY ts DESC
		LIMIT 1
	`, reviewColumns)

	row := s.db.QueryRowContext(ctx, query, reviewID)
	rec, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest review: %w", err)
	}
	return rec, nil
}

func (s *reviewStore) List(ctx context.Context, limit int, pageToken string) ([]store.Review, string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
	`, reviewColumns)
	args := []interface{}{}

	if pageToken != "" {
		ts, id, err := decodePageToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		query += ` WHERE ts < ? OR (ts = ? AND review_id < ?)`
		args = append(args, ts, ts, id)
	}

	// Fetch one extra row to learn whether another page exists.
	query += ` ORDER BY ts DESC, review_id DESC LIMIT ?`
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	records := make([]store.Review, 0, limit)
	for rows.Next() {
		rec, err := scanReview(rows)
		if err != nil {
			return nil, "", err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		nextToken = encodePageToken(last.Timestamp, last.ReviewID)
	}

	return records, nextToken, nil
}

func (s *reviewStore) UpdateStatus(ctx context.Context, reviewID string, status string, errorMessage *string) error {
	query := `
		UPDATE reviews
		SET status = ?, error_message = COALESCE(?, error_message), updated_at = ?
		WHERE review_id = ? AND ts = (SELECT MAX(ts) FROM reviews WHERE review_id = ?)`

	res, err := s.db.ExecContext(ctx, query, status, nullString(errorMessage), s.now().UTC(), reviewID, reviewID)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *reviewStore) SaveResults(
	ctx context.Context,
	reviewID string,
	findings []store.Finding,
	recs []store.Recommendation,
	score float64,
) error {
	findingsJSON, err := json.Marshal(findings)
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	query := `
		UPDATE reviews
		SET status = 'COMPLETED', findings = ?, recommendations = ?, score = ?,
		    error_message = NULL, updated_at = ?
		WHERE review_id = ? AND ts = (SELECT MAX(ts) FROM reviews WHERE review_id = ?)`

	res, err := s.db.ExecContext(ctx, query, string(findingsJSON), string(recsJSON), score, s.now().UTC(), reviewID, reviewID)
	if err != nil {
		return fmt.Errorf("save review results: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save review results: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// The duckdb driver only binds concrete values, so optional fields go
// through database/sql null wrappers.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*store.Review, error) {
	var (
		rec                              store.Review
		pillarsRaw, findingsRaw, recsRaw []byte
		score                            sql.NullFloat64
		errorMessage                     sql.NullString
	)

	err := row.Scan(
		&rec.ReviewID,
		&rec.Timestamp,
		&rec.Status,
		&rec.AWSAccountID,
		&rec.Region,
		&pillarsRaw,
		&findingsRaw,
		&recsRaw,
		&score,
		&errorMessage,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(pillarsRaw) > 0 {
		if err := json.Unmarshal(pillarsRaw, &rec.Pillars); err != nil {
			return nil, fmt.Errorf("unmarshal pillars: %w", err)
		}
	}
	if len(findingsRaw) > 0 {
		if err := json.Unmarshal(findingsRaw, &rec.Findings); err != nil {
			return nil, fmt.Errorf("unmarshal findings: %w", err)
		}
	}
	if len(recsRaw) > 0 {
		if err := json.Unmarshal(recsRaw, &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
	}
	if score.Valid {
		v := score.Float64
		rec.Score = &v
	}
	if errorMessage.Valid {
		v := errorMessage.String
		rec.ErrorMessage = &v
	}

	return &rec, nil
}

func encodePageToken(ts time.Time, reviewID string) string {
	raw := fmt.Sprintf("%s|%s", ts.UTC().Format(time.RFC3339Nano), reviewID)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodePageToken(token string) (time.Time, string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", err
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("malformed cursor")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", err
	}
	return ts, parts[1], nil
}
