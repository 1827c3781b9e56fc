/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、表结构迁移、可选Redis与各业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务；Redis未配置时身份缓存与会话锁自动降级
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, github.com/go-redis/redis/v8
 * @refs service/database/migrate.go
 */

package service

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"migration-service/logger"
	"migration-service/service/cleanup"
	"migration-service/service/database"
	"migration-service/service/distributed_lock"
	"migration-service/service/identity"
	"migration-service/service/rate_limiter"
	"migration-service/service/scheduler"
	"migration-service/service/utils"
)

var (
	DB                      *gorm.DB
	RedisClient             *redis.Client
	GlobalIdentityStore     *identity.Store
	GlobalMigrationService  *MigrationService
	GlobalSchedulerService  *scheduler.SchedulerService
	GlobalRunCleanupService *cleanup.RunCleanupService
	GlobalRateLimiter       *rate_limiter.RedisRateLimiter
	GlobalCrypto            *utils.CryptoUtils
)

func init() {
	logger.InitLogger()
	initDatabase()
	runMigrations()
	initRedis()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库表结构迁移完成")
}

// initRedis 初始化可选的Redis连接，未配置时身份缓存与会话锁降级为关闭
func initRedis() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("未配置REDIS_HOST，身份映射缓存与会话锁已停用")
		return
	}

	port := getEnvWithDefault("REDIS_PORT", "6379")
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	log.Println("Redis连接配置完成")
}

// initServices 初始化服务
func initServices() {
	if RedisClient != nil {
		GlobalIdentityStore = identity.NewStoreWithCache(DB, RedisClient)
	} else {
		GlobalIdentityStore = identity.NewStore(DB)
	}

	GlobalCrypto = utils.NewCryptoUtils(getEnvWithDefault("CREDENTIAL_KEY", "migration-service-default-key"))

	budget := stepBudgetFromEnv()
	GlobalMigrationService = NewMigrationService(DB, GlobalIdentityStore, GlobalCrypto, slog.Default(), budget)

	if RedisClient != nil {
		if lock, err := distributed_lock.NewRedisLock(RedisClient); err != nil {
			log.Printf("分布式会话锁初始化失败: %v", err)
		} else {
			GlobalMigrationService.SetSessionLock(lock)
		}
	}

	if RedisClient != nil {
		if limit := rateLimitFromEnv(); limit > 0 {
			GlobalRateLimiter = rate_limiter.NewRedisRateLimiter(RedisClient, time.Minute, limit)
			log.Printf("迁移API限流已启用: %d 次/分钟", limit)
		}
	}

	GlobalSchedulerService = scheduler.NewSchedulerService(DB, GlobalMigrationService)
	if err := GlobalSchedulerService.Start(); err != nil {
		log.Printf("启动迁移调度器失败: %v", err)
	}

	GlobalRunCleanupService = cleanup.NewRunCleanupService(DB)
	if err := GlobalRunCleanupService.StartScheduledCleanup(); err != nil {
		log.Printf("启动运行记录清理调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}

// stepBudgetFromEnv 读取单步墙钟预算（秒）
func stepBudgetFromEnv() time.Duration {
	if value := os.Getenv("STEP_BUDGET_SECONDS"); value != "" {
		if d, err := time.ParseDuration(value + "s"); err == nil && d > 0 {
			return d
		}
	}
	return 0 // 取引擎默认值
}

// rateLimitFromEnv 读取迁移API每分钟请求上限，0表示不限流
func rateLimitFromEnv() int {
	if value := os.Getenv("RATE_LIMIT_PER_MINUTE"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
			return limit
		}
	}
	return 0
}
