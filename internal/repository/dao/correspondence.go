package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

// Correspondence 通信归档表
type Correspondence struct {
	ID        uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	CaseID    string `gorm:"type:VARCHAR(64);NOT NULL;index:idx_case_id;comment:'案件ID'"`
	EventType string `gorm:"type:VARCHAR(64);NOT NULL;comment:'触发事件类型'"`
	Channel   string `gorm:"type:ENUM('EMAIL','SMS','LETTER');NOT NULL;comment:'发送渠道'"`
	Recipient string `gorm:"type:VARCHAR(512);column:recipient;comment:'收件地址，邮箱/手机号/邮寄地址'"`
	Sender    string `gorm:"type:VARCHAR(128);comment:'发件标识'"`
	Body      []byte `gorm:"type:MEDIUMBLOB;comment:'信件归档原始字节，邮件短信归档渲染后正文'"`
	// 合理便利信件单独标记，供线下打印流程拉取
	ReasonableAdjustment bool  `gorm:"type:TINYINT(1);NOT NULL;DEFAULT:0;comment:'是否合理便利信件'"`
	SentAt               int64 `gorm:"type:BIGINT;NOT NULL;comment:'发送时间，毫秒'"`
	Ctime                int64
	Utime                int64
}

func (Correspondence) TableName() string {
	return "correspondences"
}

type CorrespondenceDAO interface {
	Insert(ctx context.Context, c Correspondence) (Correspondence, error)
	FindByCaseID(ctx context.Context, caseID string) ([]Correspondence, error)
}

type correspondenceDAO struct {
	db *egorm.Component
}

func NewCorrespondenceDAO(db *egorm.Component) CorrespondenceDAO {
	return &correspondenceDAO{db: db}
}

func (d *correspondenceDAO) Insert(ctx context.Context, c Correspondence) (Correspondence, error) {
	now := time.Now().UnixMilli()
	c.Ctime = now
	c.Utime = now
	err := d.db.WithContext(ctx).Create(&c).Error
	if err != nil {
		return Correspondence{}, err
	}
	return c, nil
}

func (d *correspondenceDAO) FindByCaseID(ctx context.Context, caseID string) ([]Correspondence, error) {
	var rows []Correspondence
	err := d.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("sent_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
