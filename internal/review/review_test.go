package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindnest/backend/internal/models"
)

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusUnderReview, models.StatusUnderFunding, true},
		{models.StatusUnderReview, models.StatusFunded, true},
		{models.StatusUnderReview, models.StatusRejected, true},
		{models.StatusUnderFunding, models.StatusFunded, true},
		{models.StatusUnderFunding, models.StatusRejected, true},
		{models.StatusUnderFunding, models.StatusUnderReview, false},
		{models.StatusFunded, models.StatusUnderReview, false},
		{models.StatusFunded, models.StatusRejected, false},
		{models.StatusRejected, models.StatusUnderReview, false},
		{models.StatusRejected, models.StatusFunded, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAllowedSameState(t *testing.T) {
	for status := range Transitions {
		assert.True(t, Allowed(status, status), "%s -> itself", status)
	}
}

func TestAllowedUnknownStatus(t *testing.T) {
	assert.False(t, Allowed("archived", models.StatusFunded))
	assert.False(t, Allowed(models.StatusUnderReview, "archived"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(models.StatusUnderReview))
	assert.False(t, Valid(""))
	assert.False(t, Valid("UNDER_REVIEW"))
}
