/*
 * @module service/target/models
 * @description 目标侧规范模型：迁移落库的统一商城结构
 * @architecture 数据模型层
 * @documentReference dev_docs/migration_requirements.md
 * @stateFlow 导入引擎写入，目标ID回填身份映射
 * @rules 目标ID为自增整型，是身份映射表 target_id 的取值域
 * @dependencies gorm.io/gorm
 * @refs service/importengine, writer.go
 */

package target

import "time"

// Category 目标分类
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ParentID    int64     `json:"parent_id" gorm:"index"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Position    int       `json:"position" gorm:"default:0"`
	Active      bool      `json:"active" gorm:"default:true"`
	Language    string    `json:"language" gorm:"size:16"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "target_categories"
}

// Supplier 目标供应商
type Supplier struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "target_suppliers"
}

// Customer 目标客户
type Customer struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email         string    `json:"email" gorm:"not null;size:255;index"`
	FirstName     string    `json:"firstname" gorm:"size:255"`
	LastName      string    `json:"lastname" gorm:"size:255"`
	CustomerGroup string    `json:"customergroup" gorm:"size:32"`
	Shop          string    `json:"shop" gorm:"size:32"`
	Language      string    `json:"language" gorm:"size:16"`
	Street        string    `json:"street" gorm:"size:255"`
	ZipCode       string    `json:"zipcode" gorm:"size:32"`
	City          string    `json:"city" gorm:"size:128"`
	Country       string    `json:"country" gorm:"size:64"`
	Active        bool      `json:"active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "target_customers"
}

// Article 目标商品主数据
type Article struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Description  string    `json:"description" gorm:"type:text"`
	SupplierID   int64     `json:"supplier_id" gorm:"index"`
	CategoryID   int64     `json:"category_id" gorm:"index"`
	TaxRate      string    `json:"tax_rate" gorm:"size:32"`
	Active       bool      `json:"active" gorm:"default:true"`
	MainDetailID int64     `json:"main_detail_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "target_articles"
}

// ArticleDetail 商品明细行，kind=1 为主明细，kind=2 为变体明细
type ArticleDetail struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID      int64     `json:"article_id" gorm:"not null;index"`
	OrderNumber    string    `json:"ordernumber" gorm:"size:255;index"`
	AdditionalText string    `json:"additional_text" gorm:"size:255"`
	Kind           int       `json:"kind" gorm:"default:1"`
	Price          float64   `json:"price"`
	Weight         float64   `json:"weight"`
	InStock        int64     `json:"instock"`
	Position       int       `json:"position" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName 指定表名
func (ArticleDetail) TableName() string {
	return "target_article_details"
}

// Price 价格行，按价格组区分
type Price struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID  int64   `json:"article_id" gorm:"not null;index"`
	PriceGroup string  `json:"price_group" gorm:"size:32;default:'EK'"`
	FromQty    int64   `json:"from_qty" gorm:"default:1"`
	Amount     float64 `json:"amount"`
}

// TableName 指定表名
func (Price) TableName() string {
	return "target_prices"
}

// Image 商品图片
type Image struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64  `json:"article_id" gorm:"not null;index"`
	Path      string `json:"path" gorm:"size:512"`
	Position  int    `json:"position" gorm:"default:0"`
	Main      bool   `json:"main" gorm:"default:false"`
}

// TableName 指定表名
func (Image) TableName() string {
	return "target_images"
}

// Property 筛选属性值
type Property struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ArticleID int64  `json:"article_id" gorm:"not null;index"`
	Option    string `json:"option" gorm:"size:255"`
	Value     string `json:"value" gorm:"size:255"`
}

// TableName 指定表名
func (Property) TableName() string {
	return "target_properties"
}

// Order 目标订单
type Order struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber   string    `json:"ordernumber" gorm:"size:64;index"`
	CustomerID    int64     `json:"customer_id" gorm:"index"`
	Status        string    `json:"status" gorm:"size:32"`
	Payment       string    `json:"payment" gorm:"size:64"`
	Shop          string    `json:"shop" gorm:"size:32"`
	InvoiceAmount float64   `json:"invoice_amount"`
	Currency      string    `json:"currency" gorm:"size:8"`
	OrderTime     time.Time `json:"order_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "target_orders"
}

// AllModels 目标侧全部模型，供迁移与测试建表
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Supplier{},
		&Customer{},
		&Article{},
		&ArticleDetail{},
		&Price{},
		&Image{},
		&Property{},
		&Order{},
	}
}
