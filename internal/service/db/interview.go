package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

const (
	InterviewCollection = "interviews"

	// DefaultEarlyJoinWindow how early a party may enter before the
	// scheduled time.
	DefaultEarlyJoinWindow = 5 * time.Minute
	// DefaultLateJoinWindow how long after the scheduled time a scheduled
	// interview stays joinable before it is considered a no-show.
	DefaultLateJoinWindow = 60 * time.Minute
)

// InterviewService reads and transitions durable interview records. Status
// updates always re-check the current status in the update selector, so
// racing finalization paths degrade to no-ops instead of moving a session
// backward.
type InterviewService struct {
	mongoClient   *mgo.Session
	interviewColl *mgo.Collection
	earlyWindow   time.Duration
	lateWindow    time.Duration
	xl            *xlog.Logger
}

func NewInterviewService(conf utils.MongoConfig, signaling utils.SignalingConfig, xl *xlog.Logger) (*InterviewService, error) {
	if xl == nil {
		xl = xlog.New("interview-store")
	}
	mongoClient, err := mgo.Dial(conf.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	early := DefaultEarlyJoinWindow
	if signaling.EarlyJoinMinute > 0 {
		early = time.Duration(signaling.EarlyJoinMinute) * time.Minute
	}
	late := DefaultLateJoinWindow
	if signaling.LateJoinMinute > 0 {
		late = time.Duration(signaling.LateJoinMinute) * time.Minute
	}
	return &InterviewService{
		mongoClient:   mongoClient,
		interviewColl: mongoClient.DB(conf.Database).C(InterviewCollection),
		earlyWindow:   early,
		lateWindow:    late,
		xl:            xl,
	}, nil
}

// FindActiveByRoom resolves the interview whose room key equals roomID and
// whose status is still scheduled or ongoing.
func (c *InterviewService) FindActiveByRoom(xl *xlog.Logger, roomID string) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview := model.InterviewDo{}
	condition := bson.M{
		"roomId": roomID,
		"status": bson.M{"$in": []model.InterviewStatus{model.InterviewStatusScheduled, model.InterviewStatusOngoing}},
	}
	err := c.interviewColl.Find(condition).One(&interview)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no active interview for room %s", roomID)
			return nil, errors2.New(errors2.ServerErrorInterviewNotFound, "no active interview for this room")
		}
		xl.Errorf("failed to get interview for room %s, error %v", roomID, err)
		return nil, errors2.New(errors2.ServerErrorMongoOpFail, err.Error())
	}
	return &interview, nil
}

// FindEligibleForJoin resolves the active interview for roomID and checks
// userID may enter it at the given moment: the caller must be one of the
// two assigned parties, and either the call is already ongoing or now lies
// inside [scheduledAt-early, scheduledAt+late].
func (c *InterviewService) FindEligibleForJoin(xl *xlog.Logger, roomID, userID string, now time.Time) (*model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	interview, err := c.FindActiveByRoom(xl, roomID)
	if err != nil {
		return nil, err
	}
	if interview.RoleOf(userID) == "" {
		xl.Infof("user %s is not a party to interview %s", userID, interview.ID)
		return nil, errors2.New(errors2.ServerErrorNoPermission, "not a party to this interview")
	}
	if interview.Status == model.InterviewStatusOngoing {
		return interview, nil
	}
	opensAt := interview.ScheduledAt.Add(-c.earlyWindow)
	closesAt := interview.ScheduledAt.Add(c.lateWindow)
	if now.Before(opensAt) || now.After(closesAt) {
		xl.Infof("room %s not open at %s, window [%s, %s]", roomID, now, opensAt, closesAt)
		return nil, errors2.New(errors2.ServerErrorRoomNotOpen, "room not open yet")
	}
	return interview, nil
}

// UpdateOnStart moves an interview from scheduled to ongoing, stamping
// callStartedAt exactly once. Returns false with no error when the
// interview already left the scheduled state.
func (c *InterviewService) UpdateOnStart(xl *xlog.Logger, interviewID string, startedAt time.Time, remarks string) (bool, error) {
	if xl == nil {
		xl = c.xl
	}
	selector := bson.M{"_id": interviewID, "status": model.InterviewStatusScheduled}
	change := bson.M{"$set": bson.M{
		"status":        model.InterviewStatusOngoing,
		"callStartedAt": startedAt,
		"remarks":       remarks,
		"updateTime":    time.Now(),
	}}
	err := c.interviewColl.Update(selector, change)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("interview %s no longer scheduled, start skipped", interviewID)
			return false, nil
		}
		xl.Errorf("failed to start interview %s, error %v", interviewID, err)
		return false, errors2.New(errors2.ServerErrorMongoOpFail, err.Error())
	}
	xl.Infof("interview %s is now ongoing, call started at %s", interviewID, startedAt)
	return true, nil
}

// UpdateOnComplete moves an interview from scheduled or ongoing to
// completed, stamping callEndedAt. Finalizing an already completed or
// cancelled interview is a no-op, not an error, since cleanup paths race.
func (c *InterviewService) UpdateOnComplete(xl *xlog.Logger, interviewID string, endedAt time.Time, remarks string) (bool, error) {
	if xl == nil {
		xl = c.xl
	}
	selector := bson.M{
		"_id":    interviewID,
		"status": bson.M{"$in": []model.InterviewStatus{model.InterviewStatusScheduled, model.InterviewStatusOngoing}},
	}
	change := bson.M{"$set": bson.M{
		"status":      model.InterviewStatusCompleted,
		"callEndedAt": endedAt,
		"remarks":     remarks,
		"updateTime":  time.Now(),
	}}
	err := c.interviewColl.Update(selector, change)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("interview %s already finalized, complete skipped", interviewID)
			return false, nil
		}
		xl.Errorf("failed to complete interview %s, error %v", interviewID, err)
		return false, errors2.New(errors2.ServerErrorMongoOpFail, err.Error())
	}
	xl.Infof("interview %s completed, call ended at %s", interviewID, endedAt)
	return true, nil
}

// ListStuckOngoing returns interviews still marked ongoing whose call
// started before the deadline, for the maintenance sweep.
func (c *InterviewService) ListStuckOngoing(xl *xlog.Logger, startedBefore time.Time, limit int) ([]model.InterviewDo, error) {
	if xl == nil {
		xl = c.xl
	}
	if limit <= 0 {
		limit = 10
	}
	interviews := []model.InterviewDo{}
	condition := bson.M{
		"status":        model.InterviewStatusOngoing,
		"callStartedAt": bson.M{"$lt": startedBefore},
	}
	err := c.interviewColl.Find(condition).Sort("callStartedAt").Limit(limit).All(&interviews)
	if err != nil {
		xl.Errorf("failed to list stuck interviews, error %v", err)
		return nil, err
	}
	return interviews, nil
}
