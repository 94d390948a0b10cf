package auth

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/custodia-cloud/custodia/core"
	mock_core "github.com/custodia-cloud/custodia/core/mock"
	"github.com/custodia-cloud/custodia/util"
)

const (
	actorPrivateKey  = "a46bbb4efd7ddb1d8a7a1a7a04b235452894e2b62d83a154fb5f61a991152fe0"
	systemPrivateKey = "5ad3b4247bf566c6faff61ea7340b2e967f05247147da8b3c3fdb108289ea01b"
)

func signedRequest(t *testing.T, method, path, privatekey, timestamp string) *http.Request {
	address, err := core.PrivKeyToAddr(privatekey, core.CredentialHRP)
	assert.NoError(t, err)

	signature, err := core.SignBytes([]byte(timestamp+":"+method+":"+path), privatekey)
	assert.NoError(t, err)

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(CredentialHeader, address)
	req.Header.Set(SignatureHeader, hex.EncodeToString(signature))
	req.Header.Set(TimestampHeader, timestamp)
	return req
}

func captureRequester(c echo.Context) error {
	requester, _ := c.Get(core.RequesterContextCtxKey).(core.RequesterContext)
	return c.JSON(http.StatusOK, echo.Map{
		"actorID": requester.ActorID,
		"type":    core.RequesterTypeString(requester.Type),
	})
}

func TestIdentifyRequesterResolvesKnownActor(t *testing.T) {
	ctrl := gomock.NewController(t)

	address, err := core.PrivKeyToAddr(actorPrivateKey, core.CredentialHRP)
	assert.NoError(t, err)

	mockActor := mock_core.NewMockActorService(ctrl)
	mockActor.EXPECT().GetByCredential(gomock.Any(), address).Return(core.Actor{
		ID:     "actor000000000000001a",
		Name:   "alice",
		Groups: []string{"ops"},
	}, nil)

	service := NewService(mockActor, util.Config{})

	e := echo.New()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req := signedRequest(t, http.MethodGet, "/requests", actorPrivateKey, timestamp)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = service.IdentifyRequester(captureRequester)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "actor000000000000001a")
	assert.Contains(t, rec.Body.String(), "KnownActor")
}

func TestIdentifyRequesterRecognizesSystemAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockActor := mock_core.NewMockActorService(ctrl)

	config := util.Config{}
	config.Custodia.PrivateKey = systemPrivateKey
	service := NewService(mockActor, config)

	e := echo.New()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req := signedRequest(t, http.MethodPost, "/request/abc/completion", systemPrivateKey, timestamp)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := service.IdentifyRequester(captureRequester)(c)
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "SystemAgent")
}

func TestIdentifyRequesterFallsThroughToAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockActor := mock_core.NewMockActorService(ctrl)
	service := NewService(mockActor, util.Config{})
	e := echo.New()

	// no headers at all
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	rec := httptest.NewRecorder()
	err := service.IdentifyRequester(captureRequester)(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Anonymous")

	// stale timestamp
	stale := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	req = signedRequest(t, http.MethodGet, "/requests", actorPrivateKey, stale)
	rec = httptest.NewRecorder()
	err = service.IdentifyRequester(captureRequester)(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Anonymous")

	// signature over a different path
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req = signedRequest(t, http.MethodGet, "/requests", actorPrivateKey, timestamp)
	req.Header.Set(SignatureHeader, "deadbeef")
	rec = httptest.NewRecorder()
	err = service.IdentifyRequester(captureRequester)(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "Anonymous")
}

func TestIdentifyRequesterBlocksTaggedActor(t *testing.T) {
	ctrl := gomock.NewController(t)

	address, err := core.PrivKeyToAddr(actorPrivateKey, core.CredentialHRP)
	assert.NoError(t, err)

	mockActor := mock_core.NewMockActorService(ctrl)
	mockActor.EXPECT().GetByCredential(gomock.Any(), address).Return(core.Actor{
		ID:  "actor000000000000001a",
		Tag: "_block",
	}, nil)

	service := NewService(mockActor, util.Config{})

	e := echo.New()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req := signedRequest(t, http.MethodGet, "/requests", actorPrivateKey, timestamp)
	rec := httptest.NewRecorder()

	err = service.IdentifyRequester(captureRequester)(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReceiveGatewayAuthPropagation(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	req.Header.Set(core.RequesterIdHeader, "actor000000000000001a")
	req.Header.Set(core.RequesterTypeHeader, strconv.Itoa(core.KnownActor))
	req.Header.Set(core.RequesterGroupsHeader, "ops,treasury")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen core.RequesterContext
	err := ReceiveGatewayAuthPropagation(func(c echo.Context) error {
		seen, _ = c.Get(core.RequesterContextCtxKey).(core.RequesterContext)
		return c.NoContent(http.StatusOK)
	})(c)
	assert.NoError(t, err)
	assert.Equal(t, "actor000000000000001a", seen.ActorID)
	assert.Equal(t, core.KnownActor, seen.Type)
	assert.Equal(t, []string{"ops", "treasury"}, seen.Groups)
}

func TestRestrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockActor := mock_core.NewMockActorService(ctrl)
	service := NewService(mockActor, util.Config{})
	e := echo.New()

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(principal Principal, requester core.RequesterContext) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(core.RequesterContextCtxKey, requester)
		err := service.Restrict(principal)(ok)(c)
		assert.NoError(t, err)
		return rec.Code
	}

	known := core.RequesterContext{ActorID: "actor000000000000001a", Type: core.KnownActor, Tags: core.NewTags()}
	admin := core.RequesterContext{ActorID: "actor000000000000002a", Type: core.KnownActor, Tags: core.ParseTags("_admin")}
	system := core.RequesterContext{ActorID: "system", Type: core.SystemAgent, Tags: core.NewTags()}

	assert.Equal(t, http.StatusForbidden, run(ISKNOWN, core.RequesterContext{}))
	assert.Equal(t, http.StatusOK, run(ISKNOWN, known))

	assert.Equal(t, http.StatusForbidden, run(ISADMIN, known))
	assert.Equal(t, http.StatusOK, run(ISADMIN, admin))
	assert.Equal(t, http.StatusOK, run(ISADMIN, system))

	assert.Equal(t, http.StatusForbidden, run(ISSYSTEM, known))
	assert.Equal(t, http.StatusOK, run(ISSYSTEM, system))
}
