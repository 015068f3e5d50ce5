package interview

import "time"

// Answer records one question/answer turn.
type Answer struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Session captures one in-progress or completed interview.
type Session struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidateName,omitempty"`
	JobRole       string    `json:"jobRole"`
	Domain        string    `json:"domain"`
	InterviewType string    `json:"interviewType"`
	Questions     []string  `json:"questions"`
	Answers       []Answer  `json:"answers"`
	Cursor        int       `json:"cursor"`
	StartTime     time.Time `json:"startTime"`
}

// Total returns the number of questions in the session.
func (s Session) Total() int {
	return len(s.Questions)
}

// Complete reports whether every question has been answered.
func (s Session) Complete() bool {
	return s.Cursor >= len(s.Questions)
}

// CurrentQuestion returns the question under the cursor, or "" once complete.
func (s Session) CurrentQuestion() string {
	if s.Complete() {
		return ""
	}
	return s.Questions[s.Cursor]
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (s Session) Clone() Session {
	s.Questions = append([]string(nil), s.Questions...)
	s.Answers = append([]Answer(nil), s.Answers...)
	return s
}
