package model

type User struct {
	UserID    int       `gorm:"primaryKey"`
	UserName  string    `gorm:"not null;type:varchar(50)"`
	UserEmail string    `gorm:"unique;not null;type:varchar(100)"`
	UserPhone string    `gorm:"type:varchar(50)"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"` // 一對多，級聯刪除
	BaseModel
}

// Address 用戶收件地址，shipping / billing 共用同一張表
type Address struct {
	AddressID  uint   `gorm:"primaryKey"`
	UserID     int    `gorm:"not null;index"`
	Street     string `gorm:"not null;type:varchar(255)"`
	City       string `gorm:"not null;type:varchar(100)"`
	State      string `gorm:"type:varchar(100)"`
	Country    string `gorm:"not null;type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
	BaseModel
}
