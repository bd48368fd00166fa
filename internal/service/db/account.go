package db

import (
	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/common/utils"
	errors2 "github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/errors"
	"github.com/Muhammadmubeen29/ezy-jobs-recruitment-platform-sub000/internal/protodef/model"
)

const AccountCollection = "accounts"

// AccountService reads user accounts; the signaling namespace uses it to
// resolve display names for admitted participants.
type AccountService struct {
	mongoClient *mgo.Session
	accountColl *mgo.Collection
	xl          *xlog.Logger
}

func NewAccountService(conf utils.MongoConfig, xl *xlog.Logger) (*AccountService, error) {
	if xl == nil {
		xl = xlog.New("account-store")
	}
	mongoClient, err := mgo.Dial(conf.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	return &AccountService{
		mongoClient: mongoClient,
		accountColl: mongoClient.DB(conf.Database).C(AccountCollection),
		xl:          xl,
	}, nil
}

func (c *AccountService) GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error) {
	if xl == nil {
		xl = c.xl
	}
	account := model.AccountDo{}
	err := c.accountColl.FindId(id).One(&account)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such account %s", id)
			return nil, errors2.New(errors2.ServerErrorUserNotFound, "no such user")
		}
		xl.Errorf("failed to get account %s, error %v", id, err)
		return nil, errors2.New(errors2.ServerErrorMongoOpFail, err.Error())
	}
	return &account, nil
}
