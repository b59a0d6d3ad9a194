package narrative

import (
	"fmt"
	"strings"

	"github.com/yanqian/astro-prediction/internal/domain/astro"
)

// RenderFacts lists the chart: one line per planet, then one per period.
func RenderFacts(targetYear int, planets []astro.PlanetEntry, periods []astro.DashaPeriod) string {
	var b strings.Builder
	b.WriteString("Астрологические данные:\n\n")
	b.WriteString("Положение планет в натальной карте:\n")
	for _, p := range planets {
		fmt.Fprintf(&b, "- %s: в знаке %s, Накшатра %s, %s дом\n", p.Name, p.Sign, p.Nakshatra, p.House.String())
	}
	fmt.Fprintf(&b, "\nМахадаша на %d год:\n", targetYear)
	for _, v := range periods {
		fmt.Fprintf(&b, "- Планета %s: период с %s по %s\n", v.Planet, v.Start, v.End)
	}
	return b.String()
}

// BuildPrompt embeds the facts block into the forecast instructions.
func BuildPrompt(targetYear int, facts string) string {
	return fmt.Sprintf(`%s

Составь персонализированный прогноз на %d год (1-2 абзаца):

Проанализируй натальную карту и текущую Махадашу. В первом абзаце опиши ключевые энергии года: какие сферы жизни будут в фокусе (через дома и планеты-управители Махадаши), какая общая тональность периода, какие возможности и вызовы несёт эта планетарная комбинация. Учитывай силу планет в натале, их аспекты и положение в домах.

Во втором абзаце дай практические рекомендации: на что направить внимание для максимальной реализации потенциала периода, какие качества развивать, каких действий избегать. Заверши позитивным акцентом - какой результат человек может получить при осознанной работе с энергиями Махадаши.

Стиль: конкретный, без общих фраз, с акцентом на практическую пользу. Избегай негатива - даже напряжённые конфигурации описывай как зоны роста.`, facts, targetYear)
}
