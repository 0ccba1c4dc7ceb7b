package biblia

import (
	"fmt"
	"strings"

	"github.com/michalplat/panibiblia/bible/catalog"
)

func genericError(admin string) string {
	return fmt.Sprintf("Coś poszło nie tak. Zagadaj do `%s`.", admin)
}

func chapterOutOfRange(chapter int, book catalog.Book) string {
	form := catalog.PluralForm(book.Chapters, "rozdział", "rozdziały", "rozdziałów")
	return fmt.Sprintf("Nie ma rozdziału o numerze `%d` w księdze o nazwie: `%s`, która zawiera tylko `%d` %s.",
		chapter, book.Name, book.Chapters, form)
}

func verseOutOfRange(display string, chapter int, bookName string, count int) string {
	form := catalog.PluralForm(count, "wers", "wersy", "wersów")
	return fmt.Sprintf("Podano nieistniejący zakres wersów: `%s`. Rozdział nr. `%d` księgi o nazwie `%s` ma tylko `%d` %s.",
		display, chapter, bookName, count, form)
}

func deuteroNote(code string) string {
	return fmt.Sprintf("Księga %s nie istnieje w podanym przez Ciebie tłumaczeniu, ale istnieje w King James Version (księga deuterokanoniczna):\n\n",
		strings.ToUpper(code))
}

func bookNotFound(token string) string {
	return fmt.Sprintf("Księga %s nie istnieje w zbiorach kanonicznych ani deuterokanonicznych, spróbuj wpisać inną księgę.",
		strings.ToUpper(token))
}

func badVerses(raw string) string {
	return "Źle podane wersy, ma być **numerek1-numerek2** albo sam **numerek**, no i **numerek1** musi być mniejszy niż **numerek2**, " +
		fmt.Sprintf("a podane zostało: **`%s`**.", raw)
}

func unknownTranslation(name string, known []catalog.Translation) string {
	codes := make([]string, len(known))
	for i, t := range known {
		codes[i] = t.Code
	}
	return fmt.Sprintf("Nie znam tłumaczenia **%s**. Dostępne są: %s.", name, strings.Join(codes, ", "))
}

func unknownBook(name string) string {
	return fmt.Sprintf("Nie ma takiej księgi jak **%s**.", name)
}

// passageHeader starts a verse reply; the text follows in a code block.
func passageHeader(bookName string, chapter int, display, translation string) string {
	return fmt.Sprintf("**`%s %d, %s, %s:`**\n ", bookName, chapter, display, translation)
}

const noResults = "Brak wyników, spróbuj innej frazy."

func searchHeader(query, translation string) string {
	return fmt.Sprintf("Wyniki dla wyszukiwania `'%s'`, %s:\n\n", query, translation)
}

func searchHit(reference, text string) string {
	return fmt.Sprintf("`%s:`\n %s", reference, text)
}

const helpMessage = `> Pani Biblia wypisze wybrany werset i pozwala poszukać wybranej frazy w Biblii. Wspiera komendy ` + "`wersy`, `biblia pomoc`, `ksiegi`, `skroty`, `szukaj` i `apokryfy`" + `; pisz je po prefiksie robota (domyślnie ` + "`/`" + `) albo po wzmiance.
>
>     ` + "`wersy <księga> <rozdział> <wersy> [tłumaczenie]`" + ` - Podstawowa funkcjonalność, wypisze wersy po podaniu księgi, rozdziału i zakresu wersów, np. ` + "`/wersy J 3 16-18`" + `. Większość popularnych skrótów nazw ksiąg działa, więc polecam popróbować, a w razie problemów użyć komend ` + "`ksiegi`" + ` lub ` + "`skroty`" + `. Na końcu można podać tłumaczenie (UBG, KJV, LSV albo CKB); domyślnym jest Uwspółcześniona Biblia Gdańska, inne polskie tłumaczenia nie są dostępne.
>
>     ` + "`ksiegi`" + ` - Wypisze wszystkie księgi z informacją o podstawowym skrócie, pełną nazwę i liczbę rozdziałów.
>
>     ` + "`skroty <księga>`" + ` - Wypisze wszystkie alternatywne skróty po podaniu księgi (czyli musisz znać przynajmniej jeden skrót - spróbuj, bo to co Ci przyjdzie do głowy ma duże szanse zadziałać).
>
>     ` + "`szukaj [dokladnosc=0|1|2] [tlumaczenie=KJV] <fraza>`" + ` - Pozwala przeszukiwać Biblię po podaniu słowa lub frazy; ` + "`dokladnosc`" + ` mówi, jak dokładne jest Twoje wyszukiwanie (0 - szukam dokładnie, 2 - nie mam pojęcia czego szukam). Pamiętaj, że Pani Biblia pokaże maksymalnie 10 najlepszych wyników.
>
>     ` + "`apokryfy`" + ` - Księgi deuterokanoniczne są dostępne tylko pod jednym skrótem i wyłącznie w wersji angielskiej (King James Version). Użycie komendy wypisze wszystkie skróty deuterokanoniczne.
>
> Pomoc już wyświetliłeś/aś, to nie będę się produkował.`
