package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"taskvault/config"
	"taskvault/pkg/helpers"
)

// App-level container sharing constructed infrastructure across packages so
// the router can auto-wire feature modules. Everything is set once in main.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	hasher      *helpers.PasswordHasher
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetPGPool(p *pgxpool.Pool)             { pgPool = p }
func GetPGPool() *pgxpool.Pool              { return pgPool }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetJWT(m *helpers.JWTManager)          { jwtManager = m }
func GetJWT() *helpers.JWTManager           { return jwtManager }
func SetHasher(h *helpers.PasswordHasher)   { hasher = h }
func GetHasher() *helpers.PasswordHasher    { return hasher }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)         { esClient = c }
func GetES() *elasticsearch.Client          { return esClient }
