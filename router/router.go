package router

import (
	"net/http"

	"comments-contract/controller"
	"comments-contract/metrics"
	"comments-contract/service"

	"github.com/gin-gonic/gin"
)

func Init(s service.IService) *gin.Engine {
	r := gin.Default()
	group := r.Group("")

	group.Use(Cors())

	group.GET("/height", controller.HeightEndpoint(s))
	group.GET("/rewardPools", controller.RewardPoolsEndpoint(s))
	group.GET("/rewardPool", controller.RewardPoolEndpoint(s))
	group.GET("/posts", controller.PostsEndpoint(s))
	group.GET("/post", controller.PostEndpoint(s))
	group.GET("/votes", controller.VotesEndpoint(s))
	group.GET("/votingPower", controller.VotingPowerEndpoint(s))
	group.GET("/txResults", controller.TxResultsEndpoint(s))
	group.GET("/poolHistory", controller.PoolHistoryEndpoint(s))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	return r
}

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
			c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Content-Type")
		}
		if method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
		}
		c.Next()
	}
}
