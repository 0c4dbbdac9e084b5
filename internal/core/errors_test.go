package core

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "invalid text representation",
			err:  &pq.Error{Code: "22P02"},
			want: ErrInvalidInput,
		},
		{
			name: "not null violation",
			err:  &pq.Error{Code: "23502", Column: "body"},
			want: ErrMissingField,
		},
		{
			name: "foreign key violation on author",
			err:  &pq.Error{Code: "23503", Constraint: "comments_author_fkey"},
			want: ErrUnknownUser,
		},
		{
			name: "foreign key violation on article",
			err:  &pq.Error{Code: "23503", Constraint: "comments_article_id_fkey"},
			want: NoRecordFound,
		},
		{
			name: "foreign key violation on topic",
			err:  &pq.Error{Code: "23503", Constraint: "articles_topic_fkey"},
			want: NoRecordFound,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505", Constraint: "topics_pkey"},
			want: ErrAlreadyExists,
		},
		{
			name: "no rows",
			err:  sql.ErrNoRows,
			want: NoRecordFound,
		},
		{
			name: "wrapped driver error",
			err:  fmt.Errorf("executing insert: %w", &pq.Error{Code: "23505"}),
			want: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			require.Error(t, got)
			assert.True(t, errors.Is(got, tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestClassifyErrorUnrecognised(t *testing.T) {
	err := errors.New("connection reset by peer")

	got := classifyError(err)

	require.Error(t, got)
	for _, sentinel := range []error{NoRecordFound, ErrInvalidInput, ErrInvalidQuery, ErrMissingField, ErrInvalidImageType, ErrUnknownUser, ErrAlreadyExists} {
		assert.False(t, errors.Is(got, sentinel), "unclassified error must not match %v", sentinel)
	}
}

func TestClassifyErrorNil(t *testing.T) {
	assert.NoError(t, classifyError(nil))
}
