package routes

import (
	"github.com/M0rdr3d/lisk/pkg/controllers"
	"github.com/M0rdr3d/lisk/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRecordsHTTPLayer(logger *logrus.Entry, parentRouterGroup *gin.RouterGroup, svc services.RecordsService) {
	routes := controllers.NewRecordsHttpRoutes(logger, svc)

	router := parentRouterGroup
	rv1 := router.Group("/v1")

	// GET entities
	rv1.GET("/entities", routes.GetEntities)
	// GET entity filters
	rv1.GET("/entities/:entity/filters", routes.GetFilters)
	// GET entity records
	rv1.GET("/entities/:entity/records", routes.GetRecords)
	// GET entity stats
	rv1.GET("/entities/:entity/stats", routes.GetStats)
}
