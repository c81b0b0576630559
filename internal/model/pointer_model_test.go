package model

import (
	"testing"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPointer() Pointer {
	return Pointer{
		Title:     "Practice two-pointer technique",
		Topic:     TopicDSA,
		Status:    StatusNotStarted,
		Weightage: DefaultWeightage,
	}
}

func TestPointerValidateWeightageBounds(t *testing.T) {
	for _, w := range []int{1, 5, 10} {
		p := validPointer()
		p.Weightage = w
		assert.NoError(t, p.Validate(), "weightage %d", w)
	}
	for _, w := range []int{0, -1, 11} {
		p := validPointer()
		p.Weightage = w
		err := p.Validate()
		require.Error(t, err, "weightage %d", w)
		var vErr *apperror.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "weightage")
	}
}

func TestPointerValidateCompletedAtPairing(t *testing.T) {
	now := time.Now()

	p := validPointer()
	p.Status = StatusCompleted
	assert.Error(t, p.Validate())

	p.CompletedAt = &now
	assert.NoError(t, p.Validate())

	p.Status = StatusInProgress
	assert.Error(t, p.Validate())
}

func TestPointerValidateTitleAndTopic(t *testing.T) {
	p := validPointer()
	p.Title = "   "
	p.Topic = "Cooking"

	var vErr *apperror.ValidationError
	require.ErrorAs(t, p.Validate(), &vErr)
	assert.Contains(t, vErr.Fields, "title")
	assert.Contains(t, vErr.Fields, "topic")
}

func TestSetStatusKeepsCompletedAtConsistent(t *testing.T) {
	now := time.Now()
	p := validPointer()

	p.SetStatus(StatusInProgress, now)
	assert.Nil(t, p.CompletedAt)

	p.SetStatus(StatusCompleted, now)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, now, *p.CompletedAt)

	later := now.Add(time.Hour)
	p.SetStatus(StatusCompleted, later)
	assert.Equal(t, now, *p.CompletedAt, "re-completing keeps the original instant")

	p.SetStatus(StatusNotStarted, later)
	assert.Nil(t, p.CompletedAt)
	assert.NoError(t, p.Validate())
}

func TestParseTopic(t *testing.T) {
	topic, ok := ParseTopic(" system design ")
	assert.True(t, ok)
	assert.Equal(t, TopicSystemDesign, topic)

	_, ok = ParseTopic("Databases")
	assert.False(t, ok)
}

func TestParsedPointerTargetsExisting(t *testing.T) {
	assert.True(t, ParsedPointer{IsUpdate: true, ExistingPointerID: "p-1"}.TargetsExisting())
	assert.False(t, ParsedPointer{IsUpdate: true}.TargetsExisting())
	assert.False(t, ParsedPointer{ExistingPointerID: "p-1"}.TargetsExisting())
}
