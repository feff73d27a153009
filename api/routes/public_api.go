package routes

import (
	"gather/api/handlers"
	"gather/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/api/v1/")
	{
		public.POST("auth/register", handlers.Register)
		public.POST("auth/login", handlers.Login)
	}

	private := router.Group("/api/v1/")
	private.Use(middleware.AuthMiddleware())
	{
		private.POST("auth/logout", handlers.Logout)

		// Пользователи и поиск
		private.GET("user/search", handlers.UserSearch)
		private.GET("user/search/friends", handlers.FriendSearch)
		private.GET("user/get/:id", handlers.UserGet)
		private.POST("user/update", handlers.UserUpdate)

		// Друзья
		private.POST("friends/add", handlers.AddFriend)
		private.POST("friends/accept", handlers.AcceptFriend)
		private.POST("friends/reject", handlers.RejectFriend)
		private.POST("friends/delete", handlers.DeleteFriend)
		private.GET("friends/list", handlers.GetFriends)
		private.GET("friends/requests", handlers.GetPendingRequests)
		private.GET("friends/requests/count", handlers.GetPendingRequestCount)

		// События и участие
		private.POST("events/create", handlers.CreateEvent)
		private.POST("events/join", handlers.JoinEvent)
		private.POST("events/leave", handlers.LeaveEvent)
		private.GET("events/list", handlers.ListEvents)
		private.GET("events/get/:id", handlers.GetEvent)
		private.GET("events/participants/:id", handlers.EventParticipants)
		private.GET("events/hosted/count", handlers.HostedEventCount)

		// Уведомления
		private.GET("ws/notifications", handlers.WSNotifications)
	}
	return private
}
