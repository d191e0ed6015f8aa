package models

import "time"

// Ownable is implemented by every model that belongs to a user.
// Lookups must always be conjoined with the owner's id; the interface lets
// shared code assert ownership without knowing the concrete type.
type Ownable interface {
	GetUserID() uint
}

// JobType categorizes jobs ("mural", "evento", ...).
// The name is unique per user; a type with dependent jobs cannot be deleted.
type JobType struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null;uniqueIndex:uq_tipos_trabajo_usuario" json:"-"`
	Nombre string `gorm:"size:100;not null;uniqueIndex:uq_tipos_trabajo_usuario" json:"nombre"`
}

func (t *JobType) GetUserID() uint { return t.UserID }

func (JobType) TableName() string { return "tipos_trabajo" }

// Supply is a consumable/resource tracked for cost and time ("pinturas",
// "colectivo"). Unique per user; cannot be deleted while expenses reference it.
type Supply struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null;uniqueIndex:uq_insumos_usuario" json:"-"`
	Nombre string `gorm:"size:150;not null;uniqueIndex:uq_insumos_usuario" json:"nombre"`
}

func (s *Supply) GetUserID() uint { return s.UserID }

func (Supply) TableName() string { return "insumos" }

// Job is a unit of freelance work. It owns its payments and expenses;
// deleting a job cascades to both.
type Job struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"index;not null;uniqueIndex:uq_trabajos_usuario" json:"-"`
	Nombre string    `gorm:"size:150;not null;uniqueIndex:uq_trabajos_usuario" json:"nombre"`
	Fecha  time.Time `gorm:"not null" json:"fecha"`
	TipoID uint      `gorm:"index;not null" json:"tipo_id"`
	Tipo   *JobType  `gorm:"foreignKey:TipoID" json:"tipo,omitempty"`

	Pagos  []Payment `gorm:"foreignKey:TrabajoID" json:"pagos,omitempty"`
	Gastos []Expense `gorm:"foreignKey:TrabajoID" json:"gastos,omitempty"`
}

func (j *Job) GetUserID() uint { return j.UserID }

func (Job) TableName() string { return "trabajos" }

// Payment is money received for a job on a date.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	TrabajoID uint      `gorm:"index;not null" json:"trabajo_id"`
	Trabajo   *Job      `gorm:"foreignKey:TrabajoID" json:"-"`
	Fecha     time.Time `gorm:"not null" json:"fecha"`
	Monto     float64   `gorm:"not null" json:"monto"`
}

func (p *Payment) GetUserID() uint { return p.UserID }

func (Payment) TableName() string { return "pagos" }

// Expense is money and/or time spent on a job against a supply.
type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	TrabajoID uint      `gorm:"index;not null" json:"trabajo_id"`
	Trabajo   *Job      `gorm:"foreignKey:TrabajoID" json:"-"`
	InsumoID  uint      `gorm:"index;not null" json:"insumo_id"`
	Insumo    *Supply   `gorm:"foreignKey:InsumoID" json:"-"`
	Fecha     time.Time `gorm:"not null" json:"fecha"`
	Monto     float64   `gorm:"not null;default:0" json:"monto"`
	Tiempo    float64   `gorm:"not null;default:0" json:"tiempo"`
}

func (e *Expense) GetUserID() uint { return e.UserID }

func (Expense) TableName() string { return "gastos_trabajo" }
