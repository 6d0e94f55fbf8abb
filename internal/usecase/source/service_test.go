package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/repository"
	"news-dashboard/internal/usecase/source"
	"news-dashboard/pkg/cache"
)

type countingRepo struct {
	listCalls int
	rows      []repository.SourceWithCount
}

func (r *countingRepo) GetOrCreate(_ context.Context, s *entity.Source) (*entity.Source, error) {
	return s, nil
}

func (r *countingRepo) ListWithCounts(context.Context) ([]repository.SourceWithCount, error) {
	r.listCalls++
	return r.rows, nil
}

func TestList_CachesResult(t *testing.T) {
	repo := &countingRepo{rows: []repository.SourceWithCount{
		{Source: &entity.Source{ID: 1, SourceID: "bbc", Name: "BBC"}, ArticleCount: 3},
	}}
	store := cache.NewTTLStore(cache.Config{TTL: time.Minute})
	t.Cleanup(store.Close)
	svc := &source.Service{Repo: repo, Cache: store}

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "bbc", first[0].Source.SourceID)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestList_ExpiredEntryRefetches(t *testing.T) {
	repo := &countingRepo{}
	store := cache.NewTTLStore(cache.Config{TTL: time.Nanosecond})
	t.Cleanup(store.Close)
	svc := &source.Service{Repo: repo, Cache: store}

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}
