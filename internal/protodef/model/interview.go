package model

import "time"

// InterviewStatus durable interview lifecycle status. This service only
// ever moves it forward; cancelled is assigned elsewhere and merely
// respected here.
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusOngoing   InterviewStatus = "ongoing"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// InterviewDo durable interview record. RoomID is the key the signaling
// namespace coordinates on.
type InterviewDo struct {
	ID              string          `json:"id" bson:"_id"`
	RoomID          string          `json:"roomId" bson:"roomId"`
	Title           string          `json:"title" bson:"title"`
	ScheduledAt     time.Time       `json:"scheduledAt" bson:"scheduledAt"`
	Status          InterviewStatus `json:"status" bson:"status"`
	InterviewerID   string          `json:"interviewerId" bson:"interviewerId"`
	InterviewerName string          `json:"interviewerName" bson:"interviewerName"`
	CandidateID     string          `json:"candidateId" bson:"candidateId"`
	CandidateName   string          `json:"candidateName" bson:"candidateName"`
	CallStartedAt   *time.Time      `json:"callStartedAt,omitempty" bson:"callStartedAt,omitempty"`
	CallEndedAt     *time.Time      `json:"callEndedAt,omitempty" bson:"callEndedAt,omitempty"`
	Remarks         string          `json:"remarks" bson:"remarks"`
	CreateTime      time.Time       `json:"createTime" bson:"createTime"`
	UpdateTime      time.Time       `json:"updateTime" bson:"updateTime"`
}

// RoleOf returns the role userID plays in this interview, or "" when the
// user is not a party to it.
func (i *InterviewDo) RoleOf(userID string) InterviewRole {
	switch userID {
	case i.InterviewerID:
		return InterviewRoleInterviewer
	case i.CandidateID:
		return InterviewRoleCandidate
	default:
		return ""
	}
}
