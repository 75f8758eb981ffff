package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/database"
	"terminal-terrace/conduit/internal/events"
	"terminal-terrace/conduit/internal/grpc"
	"terminal-terrace/conduit/internal/logger"
	"terminal-terrace/conduit/internal/metrics"
	"terminal-terrace/conduit/internal/route"
	"terminal-terrace/conduit/internal/telemetry"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")
	conf := config.Conf

	// 2. 日志
	logger.Init(conf.Log)
	gin.SetMode(conf.Server.Mode)

	if err := run(conf); err != nil {
		log.Fatal().Err(err).Msg("服务异常退出")
	}
}

func run(conf *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 链路追踪
	shutdownTracing, err := telemetry.Init(ctx, conf.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	// 4. 数据库与缓存
	db, err := database.InitDatabase(conf.Database)
	if err != nil {
		return err
	}
	redisClient, err := database.InitRedis(ctx, conf.Redis)
	if err != nil {
		return err
	}
	var tagCache redis.Cmdable
	if redisClient != nil {
		defer redisClient.Close()
		tagCache = redisClient.Client
	}

	// 5. 事件发布
	var publisher events.Publisher = events.Nop{}
	if len(conf.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(conf.Kafka.Brokers, conf.Kafka.Topic)
		if err != nil {
			return err
		}
		publisher = kp
	}
	defer publisher.Close()

	// 6. 路由
	router := route.SetupRouter(route.Dependencies{
		DB:          db,
		Issuer:      authsdk.NewIssuer(conf.JWT.Secret, conf.JWT.TokenTTL()),
		Redis:       tagCache,
		TagTTL:      time.Duration(conf.Redis.TagTTL) * time.Second,
		Publisher:   publisher,
		Metrics:     metrics.New(),
		FrontendURL: conf.Server.FrontendURL,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// 7. HTTP
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("HTTP 服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服务异常: %w", err)
		}
		return nil
	})

	// 8. gRPC 健康检查
	if conf.GRPC.Port > 0 {
		grpcServer, err := grpc.NewServer(conf.GRPC.Port)
		if err != nil {
			return err
		}
		g.Go(func() error {
			log.Info().Str("addr", grpcServer.GetAddr()).Msg("gRPC 服务启动")
			return grpcServer.Start()
		})
		g.Go(func() error {
			<-gctx.Done()
			grpcServer.Stop()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("正在关闭服务")
		c, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(c)
	})

	return g.Wait()
}
