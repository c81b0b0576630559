package model

import "strings"

type Topic string

const (
	TopicDSA          Topic = "DSA"
	TopicLLD          Topic = "LLD"
	TopicSystemDesign Topic = "System Design"
	TopicBehavioral   Topic = "Behavioral"
	TopicCoding       Topic = "Coding"
	TopicArchitecture Topic = "Architecture"
)

var Topics = []Topic{TopicDSA, TopicLLD, TopicSystemDesign, TopicBehavioral, TopicCoding, TopicArchitecture}

func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTopic matches case-insensitively and ignores surrounding space.
func ParseTopic(s string) (Topic, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Topics {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return Topic(s), false
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ChangeType string

const (
	ChangeCreated        ChangeType = "created"
	ChangeUpdated        ChangeType = "updated"
	ChangeMarkedComplete ChangeType = "marked_complete"
	ChangeReopened       ChangeType = "reopened"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)
