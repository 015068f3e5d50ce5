package interview

import "time"

// CompleteMessage is returned by the answer operation once the last question is answered.
const CompleteMessage = "Interview complete. Please call /feedback."

// StartRequest is the body of POST /start.
type StartRequest struct {
	CandidateName string `json:"candidateName,omitempty"`
	JobRole       string `json:"jobRole"`
	Domain        string `json:"domain"`
	InterviewType string `json:"interviewType"`
}

// StartResponse is returned once a session has been created.
type StartResponse struct {
	SessionID      string `json:"sessionId"`
	FirstQuestion  string `json:"firstQuestion"`
	TotalQuestions int    `json:"totalQuestions"`
}

// AnswerRequest is the body of POST /answer.
type AnswerRequest struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

// AnswerResponse carries either the next question or the completion signal.
type AnswerResponse struct {
	NextQuestion   string `json:"nextQuestion,omitempty"`
	QuestionNumber int    `json:"questionNumber,omitempty"`
	TotalQuestions int    `json:"totalQuestions,omitempty"`
	Message        string `json:"message,omitempty"`
	IsComplete     bool   `json:"isComplete,omitempty"`
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	SessionID string `json:"sessionId"`
}

// SessionInfo summarises a session alongside its feedback.
type SessionInfo struct {
	JobRole        string    `json:"jobRole"`
	Domain         string    `json:"domain"`
	InterviewType  string    `json:"interviewType"`
	TotalQuestions int       `json:"totalQuestions"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
}

// FeedbackResponse is the body returned by POST /feedback.
type FeedbackResponse struct {
	Feedback    string      `json:"feedback"`
	SessionInfo SessionInfo `json:"sessionInfo"`
}

// InfoFor builds the session summary as of end.
func InfoFor(s Session, end time.Time) SessionInfo {
	return SessionInfo{
		JobRole:        s.JobRole,
		Domain:         s.Domain,
		InterviewType:  s.InterviewType,
		TotalQuestions: s.Total(),
		StartTime:      s.StartTime,
		EndTime:        end,
	}
}
