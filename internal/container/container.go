package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/config"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

// app-level container to share constructed components across packages.
// The router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	repos repository.Repositories
	uow   repository.UnitOfWork
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetRepositories(r repository.Repositories) { repos = r }
func GetRepositories() repository.Repositories  { return repos }
func SetUnitOfWork(u repository.UnitOfWork)     { uow = u }
func GetUnitOfWork() repository.UnitOfWork      { return uow }
