package routes

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/M0rdr3d/lisk/pkg/config"
	"github.com/M0rdr3d/lisk/pkg/controllers"
	"github.com/M0rdr3d/lisk/pkg/models"
	headerextractors "github.com/M0rdr3d/lisk/pkg/routes/middlewares/basic-header-extractors"
	basiclogger "github.com/M0rdr3d/lisk/pkg/routes/middlewares/basic-logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewGinEngine(logger *logrus.Entry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debugf("Endpoint: %-6s %s", httpMethod, absolutePath)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		cors.New(corsConfig),
		headerextractors.RequestMetadataToContextMiddleware(logger),
		basiclogger.UseLogger(logger),
	)

	return router
}

// RunHttpRouter serves routerEngine plus the /health endpoint and returns the
// bound port. checks are run on every health request.
func RunHttpRouter(logger *logrus.Entry, routerEngine http.Handler, httpServerCfg config.HttpServer, apiInfo models.APIServiceInfo, checks map[string]controllers.HealthChecker) (int, error) {
	hCheckRoute := controllers.NewHealthCheckRoute(apiInfo, checks)
	mainLogger := logger
	if !httpServerCfg.HealthCheckLogging {
		nooutLogger := logrus.New()
		nooutLogger.Out = io.Discard

		mainLogger = nooutLogger.WithField("", "")
	}

	healthEngine := NewGinEngine(mainLogger)
	healthEngine.GET("/health", hCheckRoute.HealthCheck)

	mainEngine := http.NewServeMux()
	mainEngine.Handle("/", routerEngine)
	mainEngine.Handle("/health", healthEngine)

	addr := fmt.Sprintf("%s:%d", httpServerCfg.ListenAddress, httpServerCfg.Port)

	t := time.Second * 10
	server := http.Server{
		Addr:         addr,
		Handler:      mainEngine,
		ReadTimeout:  t,
		WriteTimeout: t,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return -1, err
	}

	usedPort := listener.Addr().(*net.TCPAddr).Port

	wg := new(sync.WaitGroup)
	wg.Add(1)

	httpErrChan := make(chan error, 1)

	addr = strings.TrimSuffix(addr, ":0")

	go func() {
		logger.Infof("HTTP server listening on %s:%d", addr, usedPort)
		wg.Done()
		err := server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			logger.Errorf("could not start http server: %s", err)
			httpErrChan <- err
		}
	}()

	// The server is considered running if it does not fail within the first second
	ctxTimeout, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	wg.Wait()

	select {
	case <-ctxTimeout.Done():
		logger.Info("HTTP server ready to accept requests")
	case err := <-httpErrChan:
		return -1, err
	}

	return usedPort, nil
}
