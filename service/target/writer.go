/*
 * @module service/target/writer
 * @description 目标写入器：接受规范实体字典，落库并返回新建的目标ID
 * @architecture 数据访问层 - 写入门面
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 规范行 -> 类型装配 -> gorm Create -> 返回自增ID
 * @rules 一行要么完整写入要么完全不写；商品写入时同时创建占位主明细
 * @dependencies gorm.io/gorm, github.com/spf13/cast
 * @refs service/importengine
 */

package target

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"migration-service/service/meta"
	"migration-service/service/utils"
)

// Writer 目标写入器
type Writer struct {
	db        *gorm.DB
	converter *utils.DataConverter
}

// NewWriter 创建目标写入器
func NewWriter(db *gorm.DB) *Writer {
	return &Writer{
		db:        db,
		converter: utils.NewDataConverter(),
	}
}

// Write 写入一条规范实体行，返回新建目标ID
// 行内引用字段（category/supplier/customer 等）在进入本方法前已由引擎解析为目标ID
func (w *Writer) Write(entityType string, row map[string]interface{}) (int64, error) {
	switch entityType {
	case meta.EntityTypeCategory:
		return w.writeCategory(row)
	case meta.EntityTypeSupplier:
		return w.writeSupplier(row)
	case meta.EntityTypeCustomer:
		return w.writeCustomer(row)
	case meta.EntityTypeArticle:
		return w.writeArticle(row)
	case meta.EntityTypePrice:
		return w.writePrice(row)
	case meta.EntityTypeImage:
		return w.writeImage(row)
	case meta.EntityTypeProperty:
		return w.writeProperty(row)
	case meta.EntityTypeOrder:
		return w.writeOrder(row)
	default:
		return 0, fmt.Errorf("目标写入器不支持实体类型: %s", entityType)
	}
}

func (w *Writer) writeCategory(row map[string]interface{}) (int64, error) {
	category := &Category{
		ParentID:    cast.ToInt64(row["parent"]),
		Name:        cast.ToString(row["name"]),
		Description: cast.ToString(row["description"]),
		Position:    cast.ToInt(row["position"]),
		Active:      w.activeOrDefault(row),
		Language:    cast.ToString(row["language"]),
	}
	if err := w.db.Create(category).Error; err != nil {
		return 0, fmt.Errorf("写入分类失败: %w", err)
	}
	return category.ID, nil
}

func (w *Writer) writeSupplier(row map[string]interface{}) (int64, error) {
	supplier := &Supplier{Name: cast.ToString(row["name"])}
	if err := w.db.Create(supplier).Error; err != nil {
		return 0, fmt.Errorf("写入供应商失败: %w", err)
	}
	return supplier.ID, nil
}

func (w *Writer) writeCustomer(row map[string]interface{}) (int64, error) {
	customer := &Customer{
		Email:         cast.ToString(row["email"]),
		FirstName:     cast.ToString(row["firstname"]),
		LastName:      cast.ToString(row["lastname"]),
		CustomerGroup: cast.ToString(row["customergroup"]),
		Shop:          cast.ToString(row["subshop"]),
		Language:      cast.ToString(row["language"]),
		Street:        cast.ToString(row["street"]),
		ZipCode:       cast.ToString(row["zipcode"]),
		City:          cast.ToString(row["city"]),
		Country:       cast.ToString(row["country"]),
		Active:        w.activeOrDefault(row),
	}
	if err := w.db.Create(customer).Error; err != nil {
		return 0, fmt.Errorf("写入客户失败: %w", err)
	}
	return customer.ID, nil
}

// writeArticle 写入商品并创建占位主明细
// 占位明细在变体生成时会被真实主明细替换
func (w *Writer) writeArticle(row map[string]interface{}) (int64, error) {
	article := &Article{
		Name:        cast.ToString(row["name"]),
		Description: cast.ToString(row["description"]),
		SupplierID:  cast.ToInt64(row["supplier"]),
		CategoryID:  cast.ToInt64(row["category"]),
		TaxRate:     cast.ToString(row["taxrate"]),
		Active:      w.activeOrDefault(row),
	}

	err := w.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		detail := &ArticleDetail{
			ArticleID:   article.ID,
			OrderNumber: cast.ToString(row["ordernumber"]),
			Kind:        1,
			Price:       w.converter.ToFloat64(row["price"]),
			Weight:      w.converter.ToFloat64(row["weight"]),
			InStock:     cast.ToInt64(row["instock"]),
		}
		if err := tx.Create(detail).Error; err != nil {
			return err
		}
		article.MainDetailID = detail.ID
		return tx.Model(article).Update("main_detail_id", detail.ID).Error
	})
	if err != nil {
		return 0, fmt.Errorf("写入商品失败: %w", err)
	}
	return article.ID, nil
}

func (w *Writer) writePrice(row map[string]interface{}) (int64, error) {
	price := &Price{
		ArticleID:  cast.ToInt64(row["article"]),
		PriceGroup: w.priceGroupOrDefault(row),
		FromQty:    w.fromQtyOrDefault(row),
		Amount:     w.converter.ToFloat64(row["price"]),
	}
	if err := w.db.Create(price).Error; err != nil {
		return 0, fmt.Errorf("写入价格失败: %w", err)
	}
	return price.ID, nil
}

func (w *Writer) writeImage(row map[string]interface{}) (int64, error) {
	image := &Image{
		ArticleID: cast.ToInt64(row["article"]),
		Path:      cast.ToString(row["path"]),
		Position:  cast.ToInt(row["position"]),
		Main:      cast.ToBool(row["main"]),
	}
	if err := w.db.Create(image).Error; err != nil {
		return 0, fmt.Errorf("写入图片失败: %w", err)
	}
	return image.ID, nil
}

func (w *Writer) writeProperty(row map[string]interface{}) (int64, error) {
	property := &Property{
		ArticleID: cast.ToInt64(row["article"]),
		Option:    cast.ToString(row["option"]),
		Value:     cast.ToString(row["value"]),
	}
	if err := w.db.Create(property).Error; err != nil {
		return 0, fmt.Errorf("写入筛选属性失败: %w", err)
	}
	return property.ID, nil
}

func (w *Writer) writeOrder(row map[string]interface{}) (int64, error) {
	order := &Order{
		OrderNumber:   cast.ToString(row["ordernumber"]),
		CustomerID:    cast.ToInt64(row["customer"]),
		Status:        cast.ToString(row["status"]),
		Payment:       cast.ToString(row["payment"]),
		Shop:          cast.ToString(row["subshop"]),
		InvoiceAmount: w.converter.ToFloat64(row["invoice_amount"]),
		Currency:      cast.ToString(row["currency"]),
		OrderTime:     w.orderTime(row),
	}
	if err := w.db.Create(order).Error; err != nil {
		return 0, fmt.Errorf("写入订单失败: %w", err)
	}
	return order.ID, nil
}

// CreateDetail 创建变体明细行
func (w *Writer) CreateDetail(detail *ArticleDetail) (int64, error) {
	if err := w.db.Create(detail).Error; err != nil {
		return 0, fmt.Errorf("写入商品明细失败: %w", err)
	}
	return detail.ID, nil
}

// GetDetail 读取单条商品明细
func (w *Writer) GetDetail(detailID int64) (*ArticleDetail, error) {
	var detail ArticleDetail
	if err := w.db.First(&detail, detailID).Error; err != nil {
		return nil, fmt.Errorf("读取商品明细失败: %w", err)
	}
	return &detail, nil
}

// DeleteDetail 删除明细行（变体生成替换占位主明细时使用）
func (w *Writer) DeleteDetail(detailID int64) error {
	if err := w.db.Delete(&ArticleDetail{}, detailID).Error; err != nil {
		return fmt.Errorf("删除商品明细失败: %w", err)
	}
	return nil
}

// GetArticle 读取商品主数据
func (w *Writer) GetArticle(articleID int64) (*Article, error) {
	var article Article
	if err := w.db.First(&article, articleID).Error; err != nil {
		return nil, fmt.Errorf("读取商品失败: %w", err)
	}
	return &article, nil
}

// UpdateMainDetail 把商品主明细指向新的明细行
func (w *Writer) UpdateMainDetail(articleID, detailID int64) error {
	if err := w.db.Model(&Article{}).Where("id = ?", articleID).
		Update("main_detail_id", detailID).Error; err != nil {
		return fmt.Errorf("更新商品主明细失败: %w", err)
	}
	return nil
}

// TruncateAll 清空目标侧全部表，仅供清理操作调用
func (w *Writer) TruncateAll() error {
	for _, model := range AllModels() {
		if err := w.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("清空目标表失败: %w", err)
		}
	}
	return nil
}

func (w *Writer) activeOrDefault(row map[string]interface{}) bool {
	value, exists := row["active"]
	if !exists || value == nil {
		return true
	}
	return cast.ToBool(value)
}

func (w *Writer) priceGroupOrDefault(row map[string]interface{}) string {
	if group := cast.ToString(row["pricegroup"]); group != "" {
		return group
	}
	return "EK"
}

func (w *Writer) fromQtyOrDefault(row map[string]interface{}) int64 {
	if qty := cast.ToInt64(row["from"]); qty > 0 {
		return qty
	}
	return 1
}

func (w *Writer) orderTime(row map[string]interface{}) time.Time {
	if t, err := cast.ToTimeE(row["date"]); err == nil {
		return t
	}
	return time.Time{}
}
