package db

import (
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/gorm"
)

// Seed loads the demo dataset. It is a no-op once any job type exists, so it
// is safe to run on every startup.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.JobType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Email: "carolinabcaruso@gmail.com", Name: "Carolina"}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		tipos := map[string]*models.JobType{}
		for _, nombre := range []string{"mural", "cuadro", "evento", "contenido", "edicion"} {
			t := &models.JobType{UserID: user.ID, Nombre: nombre}
			if err := tx.Create(t).Error; err != nil {
				return err
			}
			tipos[nombre] = t
		}

		insumos := map[string]*models.Supply{}
		for _, nombre := range []string{"uber", "colectivo", "comida", "pinturas", "bastidores"} {
			s := &models.Supply{UserID: user.ID, Nombre: nombre}
			if err := tx.Create(s).Error; err != nil {
				return err
			}
			insumos[nombre] = s
		}

		day := func(y int, m time.Month, d int) time.Time {
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}

		type seedPago struct {
			fecha time.Time
			monto float64
		}
		type seedGasto struct {
			fecha  time.Time
			insumo string
			monto  float64
			tiempo float64
		}
		type seedJob struct {
			nombre string
			fecha  time.Time
			tipo   string
			pagos  []seedPago
			gastos []seedGasto
		}

		jobs := []seedJob{
			{
				nombre: "Mural Coco", fecha: day(2024, time.January, 1), tipo: "mural",
				pagos: []seedPago{
					{day(2024, time.January, 1), 30000},
					{day(2024, time.January, 3), 50000},
					{day(2024, time.January, 10), 20000},
				},
				gastos: []seedGasto{
					{day(2024, time.January, 2), "pinturas", 5000, 0},
					{day(2024, time.January, 5), "colectivo", 350, 2},
				},
			},
			{
				nombre: "Cuadro Abstracto Azul", fecha: day(2024, time.February, 10), tipo: "cuadro",
				pagos: []seedPago{
					{day(2024, time.February, 10), 20000},
					{day(2024, time.February, 15), 15000},
				},
				gastos: []seedGasto{
					{day(2024, time.February, 11), "bastidores", 4000, 0},
					{day(2024, time.February, 12), "comida", 2500, 1.5},
				},
			},
			{
				nombre: "Contenido Instagram Febrero", fecha: day(2024, time.February, 1), tipo: "contenido",
				pagos: []seedPago{
					{day(2024, time.February, 5), 18000},
					{day(2024, time.February, 20), 12000},
				},
				gastos: []seedGasto{
					{day(2024, time.February, 3), "uber", 1200, 0.5},
					{day(2024, time.February, 18), "comida", 3000, 2},
				},
			},
			{
				nombre: "Evento Feria de Arte", fecha: day(2024, time.March, 5), tipo: "evento",
				pagos: []seedPago{
					{day(2024, time.March, 5), 60000},
					{day(2024, time.March, 7), 25000},
				},
				gastos: []seedGasto{
					{day(2024, time.March, 5), "uber", 3000, 1},
					{day(2024, time.March, 6), "comida", 4500, 3},
				},
			},
			{
				nombre: "Edición Video YouTube", fecha: day(2024, time.March, 20), tipo: "edicion",
				pagos: []seedPago{
					{day(2024, time.March, 22), 35000},
				},
				gastos: []seedGasto{
					{day(2024, time.March, 21), "comida", 1800, 2.5},
				},
			},
		}

		for _, sj := range jobs {
			job := models.Job{
				UserID: user.ID,
				Nombre: sj.nombre,
				Fecha:  sj.fecha,
				TipoID: tipos[sj.tipo].ID,
			}
			if err := tx.Create(&job).Error; err != nil {
				return err
			}
			for _, p := range sj.pagos {
				pago := models.Payment{UserID: user.ID, TrabajoID: job.ID, Fecha: p.fecha, Monto: p.monto}
				if err := tx.Create(&pago).Error; err != nil {
					return err
				}
			}
			for _, g := range sj.gastos {
				gasto := models.Expense{
					UserID:    user.ID,
					TrabajoID: job.ID,
					InsumoID:  insumos[g.insumo].ID,
					Fecha:     g.fecha,
					Monto:     g.monto,
					Tiempo:    g.tiempo,
				}
				if err := tx.Create(&gasto).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
