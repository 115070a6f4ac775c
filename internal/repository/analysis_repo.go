package repository

import (
	"context"
	"fmt"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"gorm.io/gorm"
)

// seedSnippets 建库初始化用的静态文案表（每项目一池，组稿器随机取）
var seedSnippets = map[model.Sport][]string{
	model.SportFootball: {
		"Обе команды подходят к матчу в хорошей форме, но хозяева традиционно сильны на своём поле. Последние очные встречи прошли в упорной борьбе.",
		"Статистика последних туров говорит о высокой результативности обеих команд. Оборона гостей допускает слишком много моментов у своих ворот.",
		"Команды осторожно начинают такие матчи, первый тайм часто проходит без голов. Решающие события стоит ждать после перерыва.",
		"Хозяева выиграли большинство домашних матчей сезона, при этом гости набрали ход в последних турах. Ожидается открытый футбол.",
	},
	model.SportBaseball: {
		"Стартовый питчер хозяев показывает стабильно низкий ERA в последних пяти играх. Атака гостей зависит от верхней части порядка отбивающих.",
		"Серия очных встреч в этом сезоне складывается в пользу гостей, но домашний фактор в бейсболе традиционно значим.",
		"Буллпены обеих команд перегружены после длинной серии, преимущество получит тот, кто решит исход в первых иннингах.",
	},
	model.SportHockey: {
		"Команды играют вторую игру за три дня, свежесть составов станет ключевым фактором. Вратарская бригада хозяев в отличной форме.",
		"Большинство у гостей реализуется хуже среднего по лиге, тогда как хозяева сильны в равных составах.",
		"Очные встречи сезона получались результативными, обе команды любят играть в атакующий хоккей.",
	},
	model.SportEsports: {
		"Команды показывают разный уровень на последних турнирах: фавориту важно не отдать свою карту в начале серии.",
		"Андердог традиционно неудобен для соперников из верхней части рейтинга, отдельные карты может забирать за счёт нестандартных стратегий.",
		"Форма обеих команд нестабильна, серия может затянуться до решающей карты.",
	},
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository 创建 AnalysisRepository 实例
func NewAnalysisRepository(db *gorm.DB) interfaces.AnalysisRepository {
	return &analysisRepository{db: db}
}

// SeedIfEmpty 文案池为空时按静态表灌入
func (r *analysisRepository) SeedIfEmpty(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AnalysisSnippet{}).Count(&count).Error; err != nil {
		return fmt.Errorf("统计文案池失败: %w", err)
	}
	if count > 0 {
		return nil
	}
	var rows []*model.AnalysisSnippet
	for sport, pool := range seedSnippets {
		for _, content := range pool {
			rows = append(rows, &model.AnalysisSnippet{Sport: sport, Content: content})
		}
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("灌入文案池失败: %w", err)
	}
	return nil
}

// RandomBySport 按项目随机取一条文案（池空时返回空串，由组稿器兜底）
func (r *analysisRepository) RandomBySport(ctx context.Context, sport model.Sport) (string, error) {
	var snippet model.AnalysisSnippet
	err := r.db.WithContext(ctx).
		Where("sport = ?", sport).
		Order("RANDOM()").
		First(&snippet).Error
	if err != nil {
		return "", err
	}
	return snippet.Content, nil
}
