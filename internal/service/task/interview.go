package task

import (
	"time"

	"github.com/qiniu/x/log"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/service/db"
)

const (
	// DefaultStuckCallAge an ongoing call older than this is assumed
	// abandoned, the server that owned it is gone.
	DefaultStuckCallAge = 6 * time.Hour

	sweepBatchSize = 10
)

// InterviewTask closes out interview records left ongoing by a crashed or
// restarted server. In-memory rooms die with the process, so only the
// durable status needs repair.
type InterviewTask struct {
	interviewService *db.InterviewService
}

func NewInterviewTask(conf *utils.Config) (*InterviewTask, error) {
	interviewService, err := db.NewInterviewService(*conf.Mongo, conf.Signaling, nil)
	if err != nil {
		return nil, err
	}
	return &InterviewTask{interviewService: interviewService}, nil
}

func (t *InterviewTask) TaskForCloseStuckInterviews() {
	log.Infof("taskForCloseStuckInterviews run at %s", time.Now().String())

	deadline := time.Now().Add(-DefaultStuckCallAge)
	interviews, err := t.interviewService.ListStuckOngoing(nil, deadline, sweepBatchSize)
	if err != nil {
		log.Errorf("taskForCloseStuckInterviews find interviews, error: %v", err)
		return
	}
	if len(interviews) == 0 {
		return
	}
	for _, interview := range interviews {
		endedAt := time.Now()
		remarks := "Call closed by maintenance sweep, no end signal received."
		updated, err := t.interviewService.UpdateOnComplete(nil, interview.ID, endedAt, remarks)
		if err != nil {
			log.Errorf("taskForCloseStuckInterviews close interview %s, error: %v", interview.ID, err)
			continue
		}
		if updated {
			log.Infof("taskForCloseStuckInterviews closed interview %s, call started at %s", interview.ID, interview.CallStartedAt)
		}
	}
}
