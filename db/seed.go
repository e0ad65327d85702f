package db

import (
	"log"

	"alomana/config"
	"alomana/models"
	"alomana/tools"

	"github.com/jinzhu/gorm"
)

type seedProduct struct {
	product  models.Product
	category string
	urgency  string
}

var defaultProducts = []seedProduct{
	{
		product: models.Product{
			Slug:             "corretivo-colorido-4-seasons",
			Name:             "Corretivo Colorido | 4 Seasons",
			CategorySlug:     "maquiagem",
			CategoryLabel:    "Maquiagem",
			PriceCents:       5990,
			DescriptionShort: "Alta cobertura para neutralizar marcas e imperfeicoes da pele.",
			DescriptionLong:  "Sua pele uniforme novamente. Neutraliza tons indesejados com alta cobertura e acabamento natural.",
			ImageFilename:    "img-produtos-corretivos-alomana.jpg",
			FeaturedOrder:    1,
			Active:           true,
		},
		category: "Violencia fisica",
		urgency:  models.URGENCY_ALTA,
	},
	{
		product: models.Product{
			Slug:             "base-liquida-second-skin",
			Name:             "Base Liquida Fluid | Second Skin",
			CategorySlug:     "maquiagem",
			CategoryLabel:    "Maquiagem",
			PriceCents:       9890,
			DescriptionShort: "Age como uma segunda pele e reforca a protecao diaria.",
			DescriptionLong:  "Textura leve, cobertura estrategica e acabamento natural para manter o foco no que importa.",
			ImageFilename:    "img-produtos-base-alomana.jpg",
			FeaturedOrder:    2,
			Active:           true,
		},
		category: "Violencia psicologica",
		urgency:  models.URGENCY_MEDIA,
	},
	{
		product: models.Product{
			Slug:             "paleta-behind-the-scenes",
			Name:             "Paleta de Sombras | Behind The Scenes",
			CategorySlug:     "maquiagem",
			CategoryLabel:    "Maquiagem",
			PriceCents:       11990,
			DescriptionShort: "Crie profundidade e camadas com tons intensos.",
			DescriptionLong:  "Uma paleta versatil para adaptar sua rotina sem expor sua intencao.",
			ImageFilename:    "img-produtos-paletaDeSombra-alomana.jpg",
			FeaturedOrder:    3,
			Active:           true,
		},
		category: "Assedio",
		urgency:  models.URGENCY_MEDIA,
	},
	{
		product: models.Product{
			Slug:             "mascara-speak-volume",
			Name:             "Mascara de Cilios | Speak Volume",
			CategorySlug:     "maquiagem",
			CategoryLabel:    "Maquiagem",
			PriceCents:       6490,
			DescriptionShort: "Definicao a prova de emocao e volume ao olhar.",
			DescriptionLong:  "Longa duracao e aplicacao precisa. Um item rapido para sinalizar apoio com discricao.",
			ImageFilename:    "img-produtos-rimel-alomana.jpg",
			FeaturedOrder:    4,
			Active:           true,
		},
		category: "Ameaca imediata",
		urgency:  models.URGENCY_CRITICA,
	},
	{
		product: models.Product{
			Slug:             "kit-mae-e-filha",
			Name:             "Kit Mae e Filha",
			CategorySlug:     "kits",
			CategoryLabel:    "Kits",
			PriceCents:       14990,
			DescriptionShort: "Combinacao protetora para cuidado em dupla.",
			DescriptionLong:  "Kit pensado para representar conexao e suporte, com menos atrito.",
			ImageFilename:    "img-produtos-alomana.jpg",
			FeaturedOrder:    5,
			Active:           true,
		},
		category: "Risco familiar",
		urgency:  models.URGENCY_ALTA,
	},
	{
		product: models.Product{
			Slug:             "kit-pinceis-precisao",
			Name:             "Kit de Pinceis | Precisao",
			CategorySlug:     "kits",
			CategoryLabel:    "Kits",
			PriceCents:       10990,
			DescriptionShort: "Controle total para uma rotina organizada.",
			DescriptionLong:  "Ferramentas essenciais para uma rotina objetiva, com linguagem de cuidado e protecao.",
			ImageFilename:    "img-produtos-alomana.jpg",
			FeaturedOrder:    6,
			Active:           true,
		},
		category: "Violencia patrimonial",
		urgency:  models.URGENCY_MEDIA,
	},
	{
		product: models.Product{
			Slug:             "gel-limpeza-purify-reset",
			Name:             "Gel de Limpeza | Purify & Reset",
			CategorySlug:     "skincare",
			CategoryLabel:    "Skincare",
			PriceCents:       7990,
			DescriptionShort: "Remove residuos e devolve equilibrio para a pele.",
			DescriptionLong:  "Limpeza diaria com foco em restauracao e barreira protetora.",
			ImageFilename:    "img-produtos-alomana.jpg",
			FeaturedOrder:    7,
			Active:           true,
		},
		category: "Violencia moral",
		urgency:  models.URGENCY_BAIXA,
	},
	{
		product: models.Product{
			Slug:             "protetor-barreira-invisivel",
			Name:             "Protetor Solar | Barreira Invisivel",
			CategorySlug:     "skincare",
			CategoryLabel:    "Skincare",
			PriceCents:       8990,
			DescriptionShort: "Defesa diaria contra agentes externos.",
			DescriptionLong:  "Formula para manter seguranca e continuidade de uso.",
			ImageFilename:    "img-produtos-alomana.jpg",
			FeaturedOrder:    8,
			Active:           true,
		},
		category: "Acompanhamento continuo",
		urgency:  models.URGENCY_BAIXA,
	},
}

// Seed popula o catálogo, os mapeamentos e as contas padrão quando o banco
// está vazio. Idempotente: rodar de novo não duplica nada.
func Seed(db *gorm.DB, cfg config.Configuration) error {
	for _, entry := range defaultProducts {
		var product models.Product
		err := db.Where("slug = ?", entry.product.Slug).First(&product).Error
		if gorm.IsRecordNotFoundError(err) {
			product = entry.product
			if err := db.Create(&product).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var mapping models.OccurrenceMapping
		err = db.Where("product_id = ?", product.ID).First(&mapping).Error
		if gorm.IsRecordNotFoundError(err) {
			mapping = models.OccurrenceMapping{
				ProductID:          product.ID,
				OccurrenceCategory: entry.category,
				UrgencyLevel:       entry.urgency,
			}
			if err := db.Create(&mapping).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var adminCount int
	if err := db.Model(&models.AdminUser{}).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := tools.HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			return err
		}
		admin := models.AdminUser{Username: cfg.Seed.AdminUsername, PasswordHash: hash}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seed: admin %q criado", admin.Username)
	}

	var userCount int
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := tools.HashPassword(cfg.Seed.UserPassword)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     cfg.Seed.UserUsername,
			Email:        cfg.Seed.UserEmail,
			PasswordHash: hash,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Seed: usuário demo %q criado", user.Username)
	}

	return nil
}
