package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"comments-contract/logger"
	"comments-contract/service"

	"github.com/gin-gonic/gin"
)

const (
	ResponseCodeOk          = 200
	ResponseCodeParamsError = 50001
	ResponseCodeNotFound    = 40004
	ResponseCodeServerError = 50000
)

type Response struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}

func ok(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, &Response{Code: ResponseCodeOk, Data: data, Total: total})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, &Response{Code: code, Msg: msg, Data: ""})
}

func serverError(c *gin.Context, endpoint string, err error) {
	logger.Logger.Errorf("%s endpoint error : %s", endpoint, err)
	fail(c, ResponseCodeServerError, "internal error")
}

func HeightEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		height, err := s.GetChainHeight()
		if err != nil {
			serverError(c, "height", err)
			return
		}
		ok(c, height, 0)
	}
}

func RewardPoolsEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pools, err := s.GetRewardPools()
		if err != nil {
			serverError(c, "rewardPools", err)
			return
		}
		ok(c, pools, len(pools))
	}
}

func RewardPoolEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol, exist := c.GetQuery("symbol")
		if !exist {
			fail(c, ResponseCodeParamsError, "symbol required")
			return
		}
		pool, err := s.GetRewardPoolBySymbol(symbol)
		if err != nil {
			serverError(c, "rewardPool", err)
			return
		}
		if pool == nil {
			fail(c, ResponseCodeNotFound, "reward pool not found")
			return
		}
		ok(c, pool, 1)
	}
}

func PostsEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, valid := rewardPoolId(c)
		if !valid {
			return
		}
		limitStr, _ := c.GetQuery("limit")
		limit, _ := strconv.Atoi(limitStr)
		offsetStr, _ := c.GetQuery("offset")
		offset, _ := strconv.Atoi(offsetStr)

		posts, total, err := s.GetPosts(poolId, validLimit(limit, 20, 100), validOffset(offset))
		if err != nil {
			serverError(c, "posts", err)
			return
		}
		ok(c, posts, total)
	}
}

func PostEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, valid := rewardPoolId(c)
		if !valid {
			return
		}
		authorperm, exist := c.GetQuery("authorperm")
		if !exist {
			fail(c, ResponseCodeParamsError, "authorperm required")
			return
		}
		post, err := s.GetPost(poolId, authorperm)
		if err != nil {
			serverError(c, "post", err)
			return
		}
		if post == nil {
			fail(c, ResponseCodeNotFound, "post not found")
			return
		}
		ok(c, post, 1)
	}
}

func VotesEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, valid := rewardPoolId(c)
		if !valid {
			return
		}
		authorperm, exist := c.GetQuery("authorperm")
		if !exist {
			fail(c, ResponseCodeParamsError, "authorperm required")
			return
		}
		votes, err := s.GetVotes(poolId, authorperm)
		if err != nil {
			serverError(c, "votes", err)
			return
		}
		ok(c, votes, len(votes))
	}
}

func VotingPowerEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, valid := rewardPoolId(c)
		if !valid {
			return
		}
		account, exist := c.GetQuery("account")
		if !exist {
			fail(c, ResponseCodeParamsError, "account required")
			return
		}
		vp, err := s.GetVotingPower(poolId, account, time.Now())
		if err != nil {
			serverError(c, "votingPower", err)
			return
		}
		if vp == nil {
			fail(c, ResponseCodeNotFound, "reward pool not found")
			return
		}
		ok(c, vp, 1)
	}
}

type TxResult struct {
	BlockNumber    int64           `json:"blockNumber"`
	RefBlockNumber int64           `json:"refHiveBlockNumber"`
	TransactionId  string          `json:"transactionId"`
	Sender         string          `json:"sender"`
	Contract       string          `json:"contract"`
	Action         string          `json:"action"`
	Logs           json.RawMessage `json:"logs"`
}

func TxResultsEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitStr, _ := c.GetQuery("limit")
		limit, _ := strconv.Atoi(limitStr)
		offsetStr, _ := c.GetQuery("offset")
		offset, _ := strconv.Atoi(offsetStr)

		ascStr, _ := c.GetQuery("asc")
		asc := false
		if ascStr == "true" {
			asc = true
		}

		records, total, err := s.GetTxResults(validLimit(limit, 20, 100), validOffset(offset), asc)
		if err != nil {
			serverError(c, "txResults", err)
			return
		}
		result := []*TxResult{}
		for _, record := range records {
			result = append(result, &TxResult{
				BlockNumber:    record.BlockNumber,
				RefBlockNumber: record.RefBlockNumber,
				TransactionId:  record.TransactionId,
				Sender:         record.Sender,
				Contract:       record.Contract,
				Action:         record.Action,
				Logs:           json.RawMessage(record.Logs),
			})
		}
		ok(c, result, total)
	}
}

type PoolHistory struct {
	Balance       string `json:"rewardPool"`
	PendingClaims string `json:"pendingClaims"`
	Time          int64  `json:"time"`
}

func PoolHistoryEndpoint(s service.IService) gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, valid := rewardPoolId(c)
		if !valid {
			return
		}
		limitStr, _ := c.GetQuery("limit")
		limit, _ := strconv.Atoi(limitStr)
		offsetStr, _ := c.GetQuery("offset")
		offset, _ := strconv.Atoi(offsetStr)

		records, total, err := s.GetPoolHistory(poolId, validLimit(limit, 20, 100), validOffset(offset))
		if err != nil {
			serverError(c, "poolHistory", err)
			return
		}
		result := []*PoolHistory{}
		for _, record := range records {
			result = append(result, &PoolHistory{
				Balance:       record.Balance,
				PendingClaims: record.PendingClaims,
				Time:          record.Time.Unix(),
			})
		}
		ok(c, result, total)
	}
}

func rewardPoolId(c *gin.Context) (uint64, bool) {
	idStr, _ := c.GetQuery("rewardPoolId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		fail(c, ResponseCodeParamsError, "rewardPoolId required")
		return 0, false
	}
	return id, true
}

func validLimit(originLimit, defaultLimit, maxLimit int) int {
	if originLimit <= 0 {
		return defaultLimit
	}
	if originLimit > maxLimit {
		return maxLimit
	}
	return originLimit
}

func validOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
