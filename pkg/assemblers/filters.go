package assemblers

import (
	"fmt"

	"github.com/M0rdr3d/lisk/pkg/config"
	"github.com/M0rdr3d/lisk/pkg/controllers"
	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/filters"
	"github.com/M0rdr3d/lisk/pkg/helpers"
	"github.com/M0rdr3d/lisk/pkg/models"
	"github.com/M0rdr3d/lisk/pkg/routes"
	"github.com/M0rdr3d/lisk/pkg/services"
	"github.com/M0rdr3d/lisk/pkg/storage"
	"gorm.io/gorm"
)

const serviceID = "Filters"

func AssembleFilterServiceWithHTTPServer(conf config.FilterServiceConfig, serviceInfo models.APIServiceInfo) (services.RecordsService, int, error) {
	svc, db, err := assembleFilterService(conf)
	if err != nil {
		return nil, -1, fmt.Errorf("could not assemble Filter Service. Exiting: %s", err)
	}

	lHttp := helpers.SetupLogger(conf.Server.LogLevel, serviceID, "HTTP Server")

	httpEngine := routes.NewGinEngine(lHttp)
	httpGrp := httpEngine.Group("/")
	routes.NewRecordsHTTPLayer(lHttp, httpGrp, svc)
	port, err := routes.RunHttpRouter(lHttp, httpEngine, conf.Server, serviceInfo, map[string]controllers.HealthChecker{
		string(conf.Storage.Provider): storage.Ping(db),
	})
	if err != nil {
		return nil, -1, fmt.Errorf("could not run Filter Service http server: %s", err)
	}

	return svc, port, nil
}

func AssembleFilterService(conf config.FilterServiceConfig) (services.RecordsService, error) {
	svc, _, err := assembleFilterService(conf)
	return svc, err
}

func assembleFilterService(conf config.FilterServiceConfig) (services.RecordsService, *gorm.DB, error) {
	ctx := helpers.InitContext()
	lSvc := helpers.SetupLogger(conf.Logs.Level, serviceID, "Service")
	lStorage := helpers.SetupLogger(conf.Storage.LogLevel, serviceID, "Storage")

	registry, err := entity.RegistryFromConfig(conf.Entities, filters.NewGenerator(filters.DefaultCatalog()))
	if err != nil {
		return nil, nil, fmt.Errorf("could not build entities: %s", err)
	}

	for _, name := range registry.Names() {
		ent, _ := registry.Get(name)
		helpers.ConfigureLogger(helpers.ContextWithEntity(ctx, name), lSvc).Infof("loaded table '%s' with %d filters", ent.Table, len(ent.Filters()))
	}

	db, err := storage.NewDBConnection(lStorage, conf.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create storage instance: %s", err)
	}

	svc, err := services.NewRecordsService(services.RecordsServiceBuilder{
		Logger:   lSvc,
		Registry: registry,
		DB:       db,
	})
	if err != nil {
		return nil, nil, err
	}

	return svc, db, nil
}
