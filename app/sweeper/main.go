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

	bCtx "github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/database/mongoclient"
	"github.com/faromarket/goapi/base/log"
	"github.com/faromarket/goapi/domain"
	mmiddleware "github.com/faromarket/goapi/middleware"
	"github.com/faromarket/goapi/service/chain"
	"github.com/faromarket/goapi/service/notifier"
	"github.com/faromarket/goapi/service/query"
	auction_repository "github.com/faromarket/goapi/stores/auction/repository"
	auction_usecase "github.com/faromarket/goapi/stores/auction/usecase"
	escrow_gateway "github.com/faromarket/goapi/stores/escrow/gateway"
	escrow_repository "github.com/faromarket/goapi/stores/escrow/repository"
)

func init() {
	configFile := pflag.String("config", "infra/configs/sweeper/config.yaml", "path to config file")
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

// The sweeper closes live auctions whose deadline has passed. Ending is
// open to anyone, the sweeper is just a diligent caller.
func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	// a tiny server to pass cloud run health checks
	startEchoServer()

	q := initMongo()

	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	chainIds := []domain.ChainId{}
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		chainIds = append(chainIds, domain.ChainId(chainId))
	}

	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls:     rpcs,
		OperatorKey: viper.GetString("chain.operatorKey"),
	})
	if err != nil {
		ctx.WithField("err", err).Warn("chainService started with error")
	}

	notifierService, err := notifier.New(notifier.Config{
		DiscordBotKey:    viper.GetString("discord.botKey"),
		DiscordChannelId: viper.GetString("discord.channelId"),
	})
	if err != nil {
		ctx.WithField("err", err).Error("notifier.New failed")
		os.Exit(1)
	}

	auctionUseCase := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo: auction_repository.NewAuctionRepo(q),
		SlotRepo:    auction_repository.NewActiveSlotRepo(q),
		EventRepo:   auction_repository.NewEventRepo(q),
		Ledger:      escrow_repository.NewFundLedger(q),
		Gateway:     escrow_gateway.NewErc721Gateway(chainService),
		Notifier:    notifierService,
	})

	interval := viper.GetDuration("sweeper.interval")
	if interval == 0 {
		interval = 30 * time.Second
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
FOR:
	for {
		select {
		case sig := <-quit:
			ctx.WithField("signal", sig).Info("received signal")
			cancel()
			break FOR
		case <-ticker.C:
			for _, chainId := range chainIds {
				ended, err := auctionUseCase.EndExpired(ctx, chainId)
				if err != nil {
					ctx.WithFields(log.Fields{
						"err":     err,
						"chainId": chainId,
					}).Error("auctionUseCase.EndExpired failed")
					continue
				}
				if ended > 0 {
					ctx.WithFields(log.Fields{
						"chainId": chainId,
						"ended":   ended,
					}).Info("swept expired auctions")
				}
			}
		}
	}
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
