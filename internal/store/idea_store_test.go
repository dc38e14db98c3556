package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindnest/backend/internal/models"
)

func validIdeaInput() CreateIdeaInput {
	return CreateIdeaInput{Title: "X", Pitch: "Y", Description: "Z"}
}

func TestIdeaCreateDefaults(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()

	idea, err := ideas.Create(ctx, nil, validIdeaInput())
	require.NoError(t, err)
	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, models.StatusUnderReview, idea.Status)
	assert.Nil(t, idea.Score)
	assert.Nil(t, idea.FundingAmount)
	assert.Empty(t, idea.Tags)
}

func TestIdeaCreateMissingFields(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()

	_, err := ideas.Create(ctx, nil, CreateIdeaInput{Title: "only title"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"pitch", "description"}, verr.Fields)

	// Whitespace-only counts as missing.
	_, err = ideas.Create(ctx, nil, CreateIdeaInput{Title: "  ", Pitch: "p", Description: "d"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title"}, verr.Fields)
}

func TestIdeaListByOwnerNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	ideas := NewIdeaStore(gdb)
	ctx := context.Background()
	owner := seedUser(t, gdb, "ana", models.RoleParticipant)

	first, err := ideas.Create(ctx, &owner.ID, CreateIdeaInput{Title: "first", Pitch: "p", Description: "d"})
	require.NoError(t, err)
	// sqlite stores sub-second timestamps, but keep the ordering unambiguous.
	require.NoError(t, gdb.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)
	second, err := ideas.Create(ctx, &owner.ID, CreateIdeaInput{Title: "second", Pitch: "p", Description: "d"})
	require.NoError(t, err)

	list, err := ideas.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	// Another owner's list stays empty.
	other := seedUser(t, gdb, "bo", models.RoleParticipant)
	list, err = ideas.ListByOwner(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIdeaUpdateScoreRange(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()
	idea, err := ideas.Create(ctx, nil, validIdeaInput())
	require.NoError(t, err)

	updated, err := ideas.UpdateScore(ctx, idea.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, updated.Score)
	assert.Equal(t, 7, *updated.Score)

	for _, bad := range []int{0, 11, -3} {
		_, err := ideas.UpdateScore(ctx, idea.ID, bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "score %d", bad)
	}

	// Stored value untouched by the rejected updates.
	got, err := ideas.Get(ctx, idea.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 7, *got.Score)
}

func TestIdeaUpdateNotFound(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()

	_, err := ideas.UpdateStatus(ctx, "missing", models.StatusFunded)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ideas.UpdateNote(ctx, "missing", "n")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ideas.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdeaUpdateFundingAmount(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()
	idea, err := ideas.Create(ctx, nil, validIdeaInput())
	require.NoError(t, err)

	updated, err := ideas.UpdateFundingAmount(ctx, idea.ID, 50000)
	require.NoError(t, err)
	require.NotNil(t, updated.FundingAmount)
	assert.Equal(t, 50000, *updated.FundingAmount)

	_, err = ideas.UpdateFundingAmount(ctx, idea.ID, -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestIdeaUpdateTagsIdempotent(t *testing.T) {
	ideas := NewIdeaStore(newTestDB(t))
	ctx := context.Background()
	idea, err := ideas.Create(ctx, nil, validIdeaInput())
	require.NoError(t, err)

	tags := []string{"ai", "fintech"}
	once, err := ideas.UpdateTags(ctx, idea.ID, tags)
	require.NoError(t, err)
	twice, err := ideas.UpdateTags(ctx, idea.ID, tags)
	require.NoError(t, err)

	assert.Equal(t, models.StringSlice{"ai", "fintech"}, once.Tags)
	assert.Equal(t, once.Tags, twice.Tags)

	// nil replaces with the empty list, not null.
	cleared, err := ideas.UpdateTags(ctx, idea.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StringSlice{}, cleared.Tags)
}
