package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
	"github.com/lalith-99/dreams/internal/store"
)

// Register wires every route onto the engine. Tokens travel in the JSON
// body for POST/PUT/DELETE and in the query string for GET; every
// success is a plain 200.
func Register(r *gin.Engine, services *service.Services, st *store.Store, logger *zap.Logger) {
	auth := NewAuthHandler(services.Identity, logger)
	user := NewUserHandler(services.Identity, logger)
	channel := NewChannelHandler(services.Channels, logger)
	dm := NewDMHandler(services.DMs, logger)
	message := NewMessageHandler(services.Messages, logger)
	standup := NewStandupHandler(services.Standups, logger)
	admin := NewAdminHandler(services.Admin, logger)
	other := NewOtherHandler(services.Notifications, st, logger)

	r.POST("/auth/register/v2", auth.Register)
	r.POST("/auth/login/v2", auth.Login)
	r.POST("/auth/logout/v1", auth.Logout)

	r.GET("/user/profile/v2", user.Profile)
	r.PUT("/user/profile/setname/v2", user.SetName)
	r.PUT("/user/profile/setemail/v2", user.SetEmail)
	r.PUT("/user/profile/sethandle/v1", user.SetHandle)
	r.GET("/user/stats/v1", user.Stats)
	r.GET("/users/all/v1", user.All)
	r.GET("/users/stats/v1", user.WorkspaceStats)

	r.POST("/channels/create/v2", channel.Create)
	r.GET("/channels/list/v2", channel.List)
	r.GET("/channels/listall/v2", channel.ListAll)
	r.POST("/channel/invite/v2", channel.Invite)
	r.POST("/channel/join/v2", channel.Join)
	r.POST("/channel/addowner/v1", channel.AddOwner)
	r.POST("/channel/removeowner/v1", channel.RemoveOwner)
	r.POST("/channel/leave/v1", channel.Leave)
	r.GET("/channel/details/v2", channel.Details)
	r.GET("/channel/messages/v2", channel.Messages)

	r.POST("/dm/create/v1", dm.Create)
	r.POST("/dm/invite/v1", dm.Invite)
	r.POST("/dm/leave/v1", dm.Leave)
	r.DELETE("/dm/remove/v1", dm.Remove)
	r.GET("/dm/details/v1", dm.Details)
	r.GET("/dm/list/v1", dm.List)
	r.GET("/dm/messages/v1", dm.Messages)

	r.POST("/message/send/v2", message.Send)
	r.POST("/message/senddm/v1", message.SendDM)
	r.PUT("/message/edit/v2", message.Edit)
	r.DELETE("/message/remove/v1", message.Remove)
	r.POST("/message/share/v1", message.Share)
	r.POST("/message/sendlater/v1", message.SendLater)
	r.POST("/message/sendlaterdm/v1", message.SendLaterDM)
	r.GET("/search/v2", message.Search)

	r.POST("/standup/start/v1", standup.Start)
	r.GET("/standup/active/v1", standup.Active)
	r.POST("/standup/send/v1", standup.Send)

	r.DELETE("/admin/user/remove/v1", admin.RemoveUser)
	r.POST("/admin/userpermission/change/v1", admin.ChangePermission)

	r.GET("/notifications/get/v1", other.Notifications)
	r.DELETE("/clear/v1", other.Clear)
	r.GET("/echo", other.Echo)
}
