package domain

import "time"

// SimilarityRecord is the engine's primary output. Rows are directional:
// (A,B) and (B,A) are stored independently with identical scores so lookups
// from either product are a single indexed query.
//
// categoryScore, priceScore and coViewScore are reserved for future
// enrichment and always 0 in the current engine.
type SimilarityRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Shop            string    `gorm:"column:shop;not null;uniqueIndex:uniq_similarity_pair,priority:1" json:"shop"`
	ProductID1      string    `gorm:"column:product_id_1;not null;uniqueIndex:uniq_similarity_pair,priority:2" json:"productId1"`
	ProductID2      string    `gorm:"column:product_id_2;not null;uniqueIndex:uniq_similarity_pair,priority:3" json:"productId2"`
	CategoryScore   float64   `gorm:"column:category_score" json:"categoryScore"`
	PriceScore      float64   `gorm:"column:price_score" json:"priceScore"`
	CoViewScore     float64   `gorm:"column:co_view_score" json:"coViewScore"`
	CoPurchaseScore float64   `gorm:"column:co_purchase_score" json:"coPurchaseScore"`
	OverallScore    float64   `gorm:"column:overall_score" json:"overallScore"`
	SampleSize      int       `gorm:"column:sample_size" json:"sampleSize"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SimilarityRecord) TableName() string {
	return "similarity_records"
}
