package provider_feed

import (
	"github.com/m04kA/SMC-WashRequestService/internal/domain"
)

// matchesServices проверяет, что исполнитель предоставляет каждый тип
// услуги из состава заявки. Политика строгая: заявка с хотя бы одной
// услугой вне перечня исполнителя в ленту не попадает, частичное
// выполнение заявки не поддерживается
func matchesServices(provider *domain.Provider, request *domain.WashRequest) bool {
	for _, serviceType := range request.RequiredServiceTypes() {
		if !provider.Offers(serviceType) {
			return false
		}
	}
	return true
}

// withinServiceArea проверяет, что адрес заявки попадает в зону
// обслуживания исполнителя. Адрес хранится свободным текстом, геокодинг
// живет в отдельном сервисе, поэтому до его подключения фильтр
// пропускает все заявки
func withinServiceArea(provider *domain.Provider, request *domain.WashRequest) bool {
	_ = provider
	_ = request
	return true
}

// buildFeed собирает ленту: исключает заявки, отклоненные самим
// исполнителем, затем применяет фильтры по услугам и зоне обслуживания.
// Порядок заявок сохраняется (репозиторий отдает их по дате выезда)
func buildFeed(
	provider *domain.Provider,
	requests []*domain.WashRequest,
	ownDeclines map[int64]struct{},
	anyDeclines map[int64]struct{},
) []FeedItem {
	items := make([]FeedItem, 0, len(requests))

	for _, request := range requests {
		if _, declined := ownDeclines[request.ID]; declined {
			continue
		}
		if !matchesServices(provider, request) {
			continue
		}
		if !withinServiceArea(provider, request) {
			continue
		}

		_, recycled := anyDeclines[request.ID]
		items = append(items, feedItemFromDomain(request, recycled))
	}

	return items
}
