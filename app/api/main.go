package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/database/mongoclient"
	"github.com/faromarket/goapi/base/database/redisclient"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/base/metrics"
	bValidator "github.com/faromarket/goapi/base/validator"
	mmiddleware "github.com/faromarket/goapi/middleware"
	"github.com/faromarket/goapi/service/chain"
	"github.com/faromarket/goapi/service/notifier"
	"github.com/faromarket/goapi/service/query"
	"github.com/faromarket/goapi/service/redis"
	account_delivery "github.com/faromarket/goapi/stores/account/delivery/http"
	account_repository "github.com/faromarket/goapi/stores/account/repository"
	account_usecase "github.com/faromarket/goapi/stores/account/usecase"
	auction_delivery "github.com/faromarket/goapi/stores/auction/delivery/http"
	auction_repository "github.com/faromarket/goapi/stores/auction/repository"
	auction_usecase "github.com/faromarket/goapi/stores/auction/usecase"
	auth_delivery "github.com/faromarket/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/faromarket/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/faromarket/goapi/stores/auth/usecase"
	escrow_delivery "github.com/faromarket/goapi/stores/escrow/delivery/http"
	escrow_gateway "github.com/faromarket/goapi/stores/escrow/gateway"
	escrow_repository "github.com/faromarket/goapi/stores/escrow/repository"
	hc_delivery "github.com/faromarket/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/faromarket/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/faromarket/goapi/stores/healthcheck/usecase"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/faromarket/goapi/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Faro Auction House API
//	@version		1.0
//	@description	API Document for the Faro custodial auction house.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:     rpcs,
		OperatorKey: viper.GetString("chain.operatorKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	notifierService, err := notifier.New(notifier.Config{
		DiscordBotKey:    viper.GetString("discord.botKey"),
		DiscordChannelId: viper.GetString("discord.channelId"),
	})
	if err != nil {
		context.WithField("err", err).Error("notifier.New failed")
		os.Exit(1)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	accountRepo := account_repository.New(q, redisCache)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	slotRepo := auction_repository.NewActiveSlotRepo(q)
	eventRepo := auction_repository.NewEventRepo(q)
	ledger := escrow_repository.NewFundLedger(q)
	tokenGateway := escrow_gateway.NewErc721Gateway(chainService)

	hcUseCase := hc_usecase.New(hcRepo)
	accountUseCase := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo:         accountRepo,
		SignatureMsg: viper.GetString("signatureMsg"),
	})
	authUseCase := auth_usecase.New(viper.GetString("jwt.secret"), accountUseCase)
	auctionUseCase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo: auctionRepo,
		SlotRepo:    slotRepo,
		EventRepo:   eventRepo,
		Ledger:      ledger,
		Gateway:     tokenGateway,
		Notifier:    notifierService,
	})

	authMiddleware := auth_middleware.New(authUseCase, viper.GetStringSlice("adminAddresses"))

	hc_delivery.New(e, hcUseCase)
	account_delivery.New(e, accountUseCase)
	auth_delivery.New(e, authUseCase, viper.GetString("signatureMsg"))
	auction_delivery.New(e, auctionUseCase, authMiddleware)
	escrow_delivery.New(e, ledger, authMiddleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
