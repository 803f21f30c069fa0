package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"comments-contract/controller"
	"comments-contract/db"
	"comments-contract/service"
	"comments-contract/types"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, r *gin.Engine, url string) *controller.Response {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)
	resp := &controller.Response{}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), resp))
	return resp
}

func TestEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ldb, err := db.NewMemLdb(db.DefaultCacheSize)
	require.NoError(t, err)
	defer ldb.Close()
	require.NoError(t, ldb.Transaction(func(tx *db.Tx) error {
		if err := db.PutRecord(tx, &types.Chain{Name: "hive", Height: 7}); err != nil {
			return err
		}
		pool := &types.RewardPool{Symbol: "TKN", Balance: "1.5", PendingClaims: "0", Active: true}
		if err := db.StoreRecord(tx, pool); err != nil {
			return err
		}
		return db.PutRecord(tx, &types.RewardPoolSymbol{Symbol: "TKN", RewardPoolId: pool.ID})
	}))
	r := Init(service.NewService(ldb, "hive"))

	resp := get(t, r, "/height")
	assert.Equal(t, controller.ResponseCodeOk, resp.Code)
	assert.EqualValues(t, 7, resp.Data)

	resp = get(t, r, "/rewardPool?symbol=TKN")
	assert.Equal(t, controller.ResponseCodeOk, resp.Code)
	assert.Equal(t, "1.5", resp.Data.(map[string]interface{})["rewardPool"])

	resp = get(t, r, "/rewardPool?symbol=NOPE")
	assert.Equal(t, controller.ResponseCodeNotFound, resp.Code)

	resp = get(t, r, "/rewardPool")
	assert.Equal(t, controller.ResponseCodeParamsError, resp.Code)

	resp = get(t, r, "/posts?rewardPoolId=abc")
	assert.Equal(t, controller.ResponseCodeParamsError, resp.Code)

	resp = get(t, r, "/votingPower?rewardPoolId=1&account=bob")
	assert.Equal(t, controller.ResponseCodeOk, resp.Code)
	assert.EqualValues(t, 10000, resp.Data.(map[string]interface{})["votingPower"])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
