package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

const csvColumns = 4

var (
	_ domain.PresenceRepository = (*CSVPresenceRepository)(nil)
	_ domain.Fingerprinter      = (*CSVPresenceRepository)(nil)
)

// SkipHandler receives every row the loader had to drop.
type SkipHandler func(rowErr *domain.RowParseError)

type CSVPresenceRepository struct {
	path   string
	onSkip SkipHandler
}

type CSVOption func(*CSVPresenceRepository)

func WithSkipHandler(h SkipHandler) CSVOption {
	return func(r *CSVPresenceRepository) {
		r.onSkip = h
	}
}

func NewCSVPresenceRepository(path string, opts ...CSVOption) *CSVPresenceRepository {
	r := &CSVPresenceRepository{
		path: path,
		onSkip: func(rowErr *domain.RowParseError) {
			log.Printf("[LOADER] %s: %v", path, rowErr)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CSVPresenceRepository) Path() string {
	return r.path
}

func (r *CSVPresenceRepository) Load(ctx context.Context) (domain.PresenceIndex, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &domain.FileAccessError{Path: r.path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	idx := domain.NewPresenceIndex()
	line := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.onSkip(&domain.RowParseError{Line: parseErr.Line, Row: row, Err: err})
				continue
			}
			return nil, &domain.FileAccessError{Path: r.path, Err: err}
		}

		if line == 1 && isHeader(row) {
			continue
		}

		rec, err := parseRow(row)
		if err != nil {
			r.onSkip(&domain.RowParseError{Line: line, Row: row, Err: err})
			continue
		}

		if idx.Add(rec) {
			log.Printf("[LOADER] %s: line %d overrides user %d on %s", r.path, line, rec.UserID, rec.Date)
		}
	}

	return idx, nil
}

// Fingerprint changes whenever the file is rewritten or resized.
func (r *CSVPresenceRepository) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return "", &domain.FileAccessError{Path: r.path, Err: err}
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()), nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "user_id")
}

func parseRow(row []string) (domain.PresenceRecord, error) {
	if len(row) != csvColumns {
		return domain.PresenceRecord{}, fmt.Errorf("expected %d columns, got %d", csvColumns, len(row))
	}

	userID, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return domain.PresenceRecord{}, fmt.Errorf("invalid user_id: %w", err)
	}

	date, err := domain.ParseDate(strings.TrimSpace(row[1]))
	if err != nil {
		return domain.PresenceRecord{}, err
	}

	start, err := domain.ParseClock(strings.TrimSpace(row[2]))
	if err != nil {
		return domain.PresenceRecord{}, err
	}

	end, err := domain.ParseClock(strings.TrimSpace(row[3]))
	if err != nil {
		return domain.PresenceRecord{}, err
	}

	return domain.PresenceRecord{UserID: userID, Date: date, Start: start, End: end}, nil
}
