package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"migration-service/service/meta"
	"migration-service/service/source"
)

type MetaController struct {
}

func NewMetaController() *MetaController {
	return &MetaController{}
}

// @Summary 获取支持的源平台 Profile 列表
// @Description 获取迁移服务支持的全部旧平台类型及其展示名
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]meta.MetaField}
// @Router /meta/profiles [get]
func (c *MetaController) GetProfiles(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("获取源平台列表成功", meta.Profiles))
}

// @Summary 获取实体类型元数据
// @Description 获取全部可迁移实体类型及固定导入顺序
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=map[string]interface{}}
// @Router /meta/entity-types [get]
func (c *MetaController) GetEntityTypes(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"entity_types": meta.EntityTypeMetaFields,
		"import_order": meta.ImportOrder,
	}
	render.JSON(w, r, SuccessResponse("获取实体类型元数据成功", data))
}

// @Summary 获取值映射分组元数据
// @Description 获取手工值映射使用的全部分组
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]meta.MetaField}
// @Router /meta/value-groups [get]
func (c *MetaController) GetValueGroups(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("获取值映射分组成功", meta.ValueGroups))
}

// @Summary 获取 Profile 的实体能力表
// @Description 获取指定源平台 Profile 支持的实体类型与元数据分组
// @Tags 元数据
// @Produce json
// @Param profile path string true "源平台 Profile 名称"
// @Success 200 {object} APIResponse{data=map[string]interface{}}
// @Failure 400 {object} APIResponse
// @Router /meta/profiles/{profile}/capabilities [get]
func (c *MetaController) GetProfileCapabilities(w http.ResponseWriter, r *http.Request) {
	profile := chi.URLParam(r, "profile")
	def, err := source.GetProfileDefinition(profile)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("未知源平台 Profile", err))
		return
	}

	entities := make([]string, 0, len(def.Entities))
	for _, entityType := range meta.ImportOrder {
		if def.HasEntity(entityType) {
			entities = append(entities, entityType)
		}
	}
	groups := make([]string, 0, len(def.Metadata))
	for _, field := range meta.ValueGroups {
		if _, exists := def.Metadata[field.Name]; exists {
			groups = append(groups, field.Name)
		}
	}

	data := map[string]interface{}{
		"profile":         def.Name,
		"driver":          def.Driver,
		"default_prefix":  def.DefaultPrefix,
		"entity_types":    entities,
		"metadata_groups": groups,
	}
	render.JSON(w, r, SuccessResponse("获取 Profile 能力表成功", data))
}
