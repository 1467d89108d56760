package services

import (
	"fmt"
	"regexp"
	"strconv"

	"adspot_server/models"
)

// responseRule pairs inbound message patterns with a reply generator.
// Rules are evaluated strictly in table order and the first rule with
// any matching pattern wins, even if a later rule would also match.
type responseRule struct {
	patterns []*regexp.Regexp
	respond  func(adspace models.Adspace) string
}

func rx(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile("(?i)" + expr)
	}
	return patterns
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// hasWeeklyPrice reports whether the listing carries a non-zero rental
// price. A zero price counts as barter-only.
func hasWeeklyPrice(a models.Adspace) bool {
	return a.PricePerWeek != nil && *a.PricePerWeek != 0
}

var responseRules = []responseRule{
	{
		// price inquiry
		patterns: rx(`cen[ay]?|koszt|opłat[ay]?|ile to kosztuje`),
		respond: func(a models.Adspace) string {
			if hasWeeklyPrice(a) {
				return fmt.Sprintf("Cena za %s wynosi %s zł tygodniowo", a.Name, formatPrice(*a.PricePerWeek))
			}
			return fmt.Sprintf("%s jest dostępna w systemie barteru. Możemy zaproponować wymianę usług lub towarów - zapraszamy do omówienia", a.Name)
		},
	},
	{
		// discount / negotiation
		patterns: rx(`taniej|zniżk[ay]?|rabat|negocjacja|da się mniej|obniż`),
		respond: func(a models.Adspace) string {
			if hasWeeklyPrice(a) {
				return fmt.Sprintf("Cena za %s to %s zł/tydzień. Dla długoterminowych umów możemy rozważyć rabat", a.Name, formatPrice(*a.PricePerWeek))
			}
			return fmt.Sprintf("%s jest dostępna w systemie barteru. Zaproponuj nam swoją ofertę wymiany", a.Name)
		},
	},
	{
		// barter / exchange
		patterns: rx(`barter|wymiana|oferta wymiany|co możecie zaoferować`),
		respond: func(a models.Adspace) string {
			if hasWeeklyPrice(a) {
				return fmt.Sprintf("Możemy rozważyć również opcje barteru dla %s. Zaproponuj nam swoją ofertę", a.Name)
			}
			return fmt.Sprintf("%s jest dostępna głównie w systemie barteru. Jaka usługa lub towar możesz nam zaproponować", a.Name)
		},
	},
	{
		// location
		patterns: rx(`gdzie.*znajduj|lokalizacj|adres|położenie`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("%s znajduje się w warszawie. Pełne szczegóły lokalizacji są dostępne w opisie oferty", a.Name)
		},
	},
	{
		// availability / booking
		patterns: rx(`dostępn|rezerwacj|zarezerwować|kiedy można`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("%s jest dostępna do rezerwacji. Skontaktuj się z nami aby zarezerwować konkretny termin", a.Name)
		},
	},
	{
		// dimensions
		patterns: rx(`rozmiar|wymiary|powierzchni|ile metrów|powierzchnia|duży|duża|duże`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("Szczegółowe wymiary i powierzchnia %s znajdują się w opisie oferty", a.Name)
		},
	},
	{
		// general description
		patterns: rx(`opis|szczegół|info|informacja|charakter`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("Pełny opis %s wraz ze wszystkimi szczegółami znajdziesz w karcie oferty", a.Name)
		},
	},
	{
		// audience / reach
		patterns: rx(`publiczność|grupa docelowa|do kogo|kto|zasięg|widzenie`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("%s ma świetny zasięg i widoczność. Szczegóły o odbiorach dostępne w parametrach oferty", a.Name)
		},
	},
	{
		// duration / contract length
		patterns: rx(`czasu|długo|okres|umowa|miesiąc|rok`),
		respond: func(a models.Adspace) string {
			return "Dostępne są elastyczne okresy rezerwacji. Można wynająć od tygodnia do całego roku - do omówienia"
		},
	},
	{
		// lighting
		patterns: rx(`oświetlenie|nocą|podświetl|neon|iluminacja`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("%s ma profesjonalne oświetlenie. Szczegóły dostępne w opisie technicznym oferty", a.Name)
		},
	},
	{
		// security
		patterns: rx(`ochrona|bezpieczeństwo|monitoring|kamera`),
		respond: func(a models.Adspace) string {
			return "Miejsce jest dobrze zabezpieczone. Więcej informacji na temat bezpieczeństwa udzielimy w rozmowie"
		},
	},
	{
		// type / category
		patterns: rx(`typ|kategoria|format|rodzaj`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("%s to powierzchnia wysoko widoczna i atrakcyjna lokalizacyjnie. Typ i format dostępne w karcie", a.Name)
		},
	},
	{
		// terms / conditions
		patterns: rx(`warunki|umowa|regulamin|zasady`),
		respond: func(a models.Adspace) string {
			return "Warunki wynajmu są standardowe i elastyczne. Chętnie omówimy wszelkie szczegóły umowy"
		},
	},
	{
		// promotions
		patterns: rx(`promocja|oferta specjalna|rabat|zniżka|akcja`),
		respond: func(a models.Adspace) string {
			return "Mamy różne opcje promocyjne i pakiety. Sprawdź jakie warunki możemy Ci zaproponować"
		},
	},
	{
		// contract signing
		patterns: rx(`kontrakt|podpisać|umowa|formalne`),
		respond: func(a models.Adspace) string {
			return "Zapraszamy do omówienia szczegółów i sformalizowania umowy. Procedura jest prosta i przejrzysta"
		},
	},
	{
		// general support
		patterns: rx(`support|pomoc|pytania|wiadomo`),
		respond: func(a models.Adspace) string {
			return "Chętnie odpowiadamy na wszystkie pytania. Jeśli masz jakiekolwiek wątpliwości, daj nam znać"
		},
	},
	{
		// greeting
		patterns: rx(`cześć|hej|elo|witaj|cześć|hi|hello`),
		respond: func(a models.Adspace) string {
			return fmt.Sprintf("Cześć! Witaj w czacie. Pytaj mnie o wszystko dotyczące %s. Chętnie Ci pomogę", a.Name)
		},
	},
	{
		// thanks
		patterns: rx(`dziękuję|dzięki|spasibo|dzięki muito|super`),
		respond: func(a models.Adspace) string {
			return "Nie ma za co! Jeśli będziesz mieć jeszcze pytania, zawsze chętnie Ci odpowiem"
		},
	},
}

// FindAutoReply maps an inbound message to a canned reply in the context
// of the given listing. ok is false when no rule matches; the responder
// stays silent rather than apologizing.
func FindAutoReply(message string, adspace models.Adspace) (reply string, ok bool) {
	for _, rule := range responseRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(message) {
				return rule.respond(adspace), true
			}
		}
	}
	return "", false
}
