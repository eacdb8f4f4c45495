package app

import (
	"net/http"

	"github.com/dante4567/openwebui-sub000/internal/config"
	"github.com/dante4567/openwebui-sub000/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// setupCommonRoutes registers the unauthenticated surface shared by both
// servers: liveness, health and the swagger docs. Nothing here may expose
// resource data or mutating operations.
func setupCommonRoutes(r *gin.Engine, cfg config.Config, serviceName, docInstance string, health *handlers.HealthHandler) {
	r.GET("/", rootHandler(cfg, serviceName))
	r.GET("/health", health.Health)
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler(docInstance))
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.InstanceName(docInstance),
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))
}

func registerTaskRoutes(g *gin.RouterGroup, h *handlers.TaskHandler) {
	g.GET("/tasks", h.List)
	g.POST("/tasks", h.Create)
	g.GET("/tasks/:id", h.GetByID)
	g.POST("/tasks/:id", h.Update)
	g.DELETE("/tasks/:id", h.Delete)
	g.POST("/tasks/:id/close", h.Close)
	g.POST("/tasks/:id/reopen", h.Reopen)
	g.GET("/projects", h.Projects)
}

func registerCalendarRoutes(g *gin.RouterGroup, h *handlers.CalendarHandler) {
	g.GET("/calendars", h.Calendars)
	g.GET("/events", h.ListEvents)
	g.POST("/events", h.CreateEvent)
	g.PATCH("/events/:uid", h.UpdateEvent)
	g.DELETE("/events/:uid", h.DeleteEvent)
	g.GET("/addressbooks", h.Addressbooks)
	g.GET("/contacts", h.Contacts)
	g.POST("/contacts", h.CreateContact)
}

func rootHandler(cfg config.Config, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler(instance string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc(instance)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
