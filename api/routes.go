/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"migration-service/api/controllers"
	apimiddleware "migration-service/api/middleware"
	"migration-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 元数据
	r.Route("/meta", func(r chi.Router) {
		metaController := controllers.NewMetaController()
		r.Get("/profiles", metaController.GetProfiles)
		r.Get("/profiles/{profile}/capabilities", metaController.GetProfileCapabilities)
		r.Get("/entity-types", metaController.GetEntityTypes)
		r.Get("/value-groups", metaController.GetValueGroups)
	})

	// 管理接口统一经过API密钥鉴权
	auth := apimiddleware.NewApiKeyAuth(service.DB, service.GlobalCrypto)
	rateLimit := apimiddleware.NewRateLimit(service.GlobalRateLimiter)

	// 迁移
	r.Route("/migration", func(r chi.Router) {
		r.Use(rateLimit.Handler)
		r.Use(auth.Handler)
		migrationController := controllers.NewMigrationController()

		r.Post("/step", migrationController.Step)
		r.Post("/variants/generate", migrationController.GenerateVariants)
		r.Post("/source/metadata", migrationController.SourceMetadata)
		r.Post("/source/test", migrationController.TestConnection)
		r.Post("/mappings/suggest", migrationController.SuggestMappings)
		r.Get("/mappings/counts", migrationController.MappingCounts)
		r.Post("/cleanup", migrationController.Cleanup)
		r.Get("/cursor", migrationController.NewCursor)
	})

	// 源配置与运行记录
	profileController := controllers.NewProfileController()
	r.Route("/profiles", func(r chi.Router) {
		r.Use(auth.Handler)
		r.Get("/", profileController.ListProfiles)
		r.Post("/", profileController.SaveProfile)
		r.Delete("/{id}", profileController.DeleteProfile)
		r.Post("/{id}/run", profileController.TriggerRun)
	})
	r.With(auth.Handler).Get("/runs", profileController.ListRuns)
}
