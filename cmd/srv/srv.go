package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bwmarrin/snowflake"
	"github.com/streamdraw/backend/config"
	"github.com/streamdraw/backend/internal/domain"
	"github.com/streamdraw/backend/internal/entity"
	"github.com/streamdraw/backend/internal/model"
	"github.com/streamdraw/backend/internal/repository"
	"github.com/streamdraw/backend/migration"
	"github.com/streamdraw/backend/pkg/logger"
	"github.com/streamdraw/backend/pkg/randomorg"
	"github.com/streamdraw/backend/pkg/xcontext"
	"github.com/streamdraw/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs

	userRepo     repository.UserRepository
	giveawayRepo repository.GiveawayRepository
	ruleRepo     repository.RuleRepository
	entryRepo    repository.EntryRepository
	winnerRepo   repository.WinnerRepository
	profileRepo  repository.ProfileRepository

	ticketDomain   domain.TicketDomain
	entryDomain    domain.EntryDomain
	giveawayDomain domain.GiveawayDomain
	drawDomain     domain.DrawDomain
	ruleDomain     domain.RuleDomain
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "streamdraw"),
			Password: getEnv("MYSQL_PASSWORD", "streamdraw"),
			Database: getEnv("MYSQL_DATABASE", "streamdraw"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		RandomOrg: config.RandomOrgConfigs{
			APIKey:    getEnv("RANDOM_ORG_API_KEY", ""),
			Endpoints: splitEnv("RANDOM_ORG_ENDPOINTS"),
			Timeout:   30 * time.Second,
		},
		Draw: config.DrawConfigs{
			ListHashAlgo: getEnv("DRAW_LIST_HASH_ALGO", "sha256"),
		},
		LogLevel: getEnvInt("LOG_LEVEL", logger.INFO),
	}

	// A config file overrides the environment for the oracle and draw
	// sections.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var fileConfigs struct {
			RandomOrg config.RandomOrgConfigs `toml:"random_org"`
			Draw      config.DrawConfigs      `toml:"draw"`
		}
		if _, err := toml.DecodeFile(path, &fileConfigs); err != nil {
			panic(err)
		}

		if fileConfigs.RandomOrg.APIKey != "" {
			s.configs.RandomOrg = fileConfigs.RandomOrg
		}
		if fileConfigs.Draw.ListHashAlgo != "" {
			s.configs.Draw = fileConfigs.Draw
		}
	}
}

func (s *srv) loadLogger() {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(s.configs.LogLevel))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	s.ctx = xcontext.WithSnowflakeNode(s.ctx, node)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.giveawayRepo = repository.NewGiveawayRepository()
	s.ruleRepo = repository.NewRuleRepository()
	s.entryRepo = repository.NewEntryRepository()
	s.winnerRepo = repository.NewWinnerRepository()

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, avatar enrichment is off: %v", err)
		return
	}

	s.profileRepo = repository.NewProfileRepository(redisClient)
}

func (s *srv) loadDomains() {
	oracle, err := randomorg.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.ticketDomain = domain.NewTicketDomain(s.giveawayRepo, s.ruleRepo)
	s.entryDomain = domain.NewEntryDomain(s.giveawayRepo, s.entryRepo, s.profileRepo, s.ticketDomain)
	s.giveawayDomain = domain.NewGiveawayDomain(s.giveawayRepo, s.entryRepo, s.winnerRepo)
	s.ruleDomain = domain.NewRuleDomain(s.ruleRepo)
	s.drawDomain = domain.NewDrawDomain(
		s.giveawayRepo,
		s.winnerRepo,
		domain.NewLedgerEntrySource(s.entryRepo),
		oracle,
	)
}

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadDatabase()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	version := cctx.String("version")
	if version == "" {
		return nil
	}

	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("not found version %s", version)
	}

	return migrator(s.ctx)
}

func (s *srv) startDraw(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadDomains()

	resp, err := s.drawDomain.Draw(s.ctx, &model.DrawRequest{
		GiveawayID: cctx.String("giveaway"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startEntries(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	entryDomain := domain.NewEntryDomain(
		s.giveawayRepo,
		s.entryRepo,
		s.profileRepo,
		domain.NewTicketDomain(s.giveawayRepo, s.ruleRepo),
	)
	resp, err := entryDomain.List(s.ctx, &model.ListEntriesRequest{
		GiveawayID: cctx.String("giveaway"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startHistory(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	drawDomain := domain.NewDrawDomain(
		s.giveawayRepo,
		s.winnerRepo,
		domain.NewLedgerEntrySource(s.entryRepo),
		nil,
	)
	resp, err := drawDomain.GetHistory(s.ctx, &model.GetDrawHistoryRequest{
		GiveawayID: cctx.String("giveaway"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startReset(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	giveawayDomain := domain.NewGiveawayDomain(s.giveawayRepo, s.entryRepo, s.winnerRepo)
	_, err := giveawayDomain.Reset(s.ctx, &model.ResetGiveawayRequest{
		GiveawayID: cctx.String("giveaway"),
	})

	return err
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(b))
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	return strings.Split(value, ",")
}
