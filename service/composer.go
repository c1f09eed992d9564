package service

import (
	"fmt"
	"strings"

	"bonificador/models"
)

// Continuity bonus: $3 USD per live day beyond 22 in a month.
const (
	bonusDayThreshold = 22
	bonusPerExtraDay  = 3
)

// A month counts as substantially elapsed for the inactivity escalation once
// half of it has passed.
const inactivityElapsedRatio = 0.5

// ComputeContinuityBonus returns the extra days beyond the 22-day threshold
// and the resulting bonus. Exactly 22 days yields zero.
func ComputeContinuityBonus(daysLive int) (extraDays, bonusUSD int) {
	extraDays = daysLive - bonusDayThreshold
	if extraDays < 0 {
		extraDays = 0
	}
	return extraDays, extraDays * bonusPerExtraDay
}

// messageRule pairs a predicate with a creator-facing composer. Rules are
// evaluated top-down and the first match wins, making the product's
// escalation priority an explicit, testable data structure instead of a
// conditional ladder.
type messageRule struct {
	name     string
	matches  func(*Evaluation) bool
	creator  func(*Evaluation) string
}

var messageRules = []messageRule{
	{
		name: "inactivity",
		matches: func(e *Evaluation) bool {
			elapsed := float64(e.Pacing.DayOfMonth) / float64(e.Pacing.DaysInMonth)
			return e.Aggregate.IsZero() && elapsed >= inactivityElapsedRatio
		},
		creator: composeInactivityMessage,
	},
	{
		name: "target_reached",
		matches: func(e *Evaluation) bool {
			if e.Progress.TargetType == models.TargetTypeMaintenance {
				return true
			}
			return e.Pacing.NeededDiamonds <= 0
		},
		creator: composeTargetReachedMessage,
	},
	{
		name:    "priority_300k",
		matches: func(e *Evaluation) bool { return e.Progress.Priority300k },
		creator: composePriorityMessage,
	},
	{
		name:    "near_target",
		matches: func(e *Evaluation) bool { return e.Progress.NearTarget },
		creator: composeNearTargetMessage,
	},
	{
		name:    "extra_days_bonus",
		matches: func(e *Evaluation) bool { return e.ExtraDays > 0 },
		creator: composeBonusMessage,
	},
	{
		name:    "progress_summary",
		matches: func(e *Evaluation) bool { return true },
		creator: composeSummaryMessage,
	},
}

// selectRule returns the first matching rule for the evaluated state.
func selectRule(e *Evaluation) messageRule {
	for _, rule := range messageRules {
		if rule.matches(e) {
			return rule
		}
	}
	// The last rule always matches; unreachable.
	return messageRules[len(messageRules)-1]
}

// ComposeMessages renders the two coaching texts from the evaluated state:
// a motivational creator-facing message chosen by the escalation rules, and
// an operational manager-facing report. Pure string composition; delivery is
// someone else's job.
func ComposeMessages(e *Evaluation) (creatorMsg, managerMsg string) {
	return selectRule(e).creator(e), composeManagerMessage(e)
}

func composeInactivityMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 %s, te extrañamos en LIVE\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "No registramos actividad este mes y quedan %d días.\n", e.Pacing.DaysRemaining)
	b.WriteString("Tu manager te contactará hoy para armar un plan de recuperación.\n")
	b.WriteString("¡Todavía estás a tiempo de rescatar el mes! 💪\n")
	return b.String()
}

func composeTargetReachedMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 ¡Felicidades %s!\n\n", e.Creator.Name)
	if e.Progress.TargetType == models.TargetTypeMaintenance {
		fmt.Fprintf(&b, "Superaste todas las graduaciones del mes con %s diamantes. 💎\n", formatInt(e.Aggregate.DiamondsLive))
		b.WriteString("🏆 Siguiente objetivo: mantener el nivel.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Alcanzaste tu graduación de %s este mes. 💎\n", models.TierLabel(e.Progress.TargetValue))
	if next := nextTierAfter(e.Progress.TargetValue); next > 0 {
		fmt.Fprintf(&b, "🎯 Siguiente meta: %s\n", models.TierLabel(next))
	}
	return b.String()
}

func composePriorityMessage(e *Evaluation) string {
	pct := float64(e.Aggregate.DiamondsLive) / float64(priorityTierValue) * 100
	var b strings.Builder
	fmt.Fprintf(&b, "⭐ %s, tu meta del mes: 300K diamantes\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "Llevas %s diamantes (%.0f%% de la meta).\n", formatInt(e.Aggregate.DiamondsLive), pct)
	fmt.Fprintf(&b, "📊 Necesitas %s diamantes/día en los %d días restantes.\n",
		formatInt(e.Pacing.ReqDiamondsPerDay), e.Pacing.DaysRemaining)
	b.WriteString("¡Prioriza alcanzar 300K este mes!\n")
	return b.String()
}

func composeNearTargetMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 %s, ¡estás muy cerca!\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "Te faltan solo %s diamantes para tu graduación de %s.\n",
		formatInt(e.Pacing.NeededDiamonds), models.TierLabel(e.Progress.TargetValue))
	fmt.Fprintf(&b, "📊 Con %s diamantes/día en los %d días restantes lo logras.\n",
		formatInt(e.Pacing.ReqDiamondsPerDay), e.Pacing.DaysRemaining)
	b.WriteString("¡No aflojes ahora! 💎\n")
	return b.String()
}

func composeBonusMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎁 %s, ¡bono extra asegurado!\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "Llevas %d días LIVE: %d días por encima de 22 = $%d USD extra.\n",
		e.Aggregate.DaysLive, e.ExtraDays, e.BonusUSD)
	b.WriteString("Cada día adicional suma $3 USD más. ¡Sigue así!\n")
	return b.String()
}

func composeSummaryMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 %s, tu avance del mes\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "📅 Días: %d\n", e.Aggregate.DaysLive)
	fmt.Fprintf(&b, "⏰ Horas: %.1f\n", e.Aggregate.HoursLive)
	fmt.Fprintf(&b, "💎 Diamantes: %s\n\n", formatInt(e.Aggregate.DiamondsLive))
	for _, tier := range e.Pacing.TierStatuses {
		if tier.Achieved {
			continue
		}
		fmt.Fprintf(&b, "• %s: faltan %s\n", tier.Label, formatInt(tier.Needed))
	}
	fmt.Fprintf(&b, "\n📊 Ritmo sugerido: %s diamantes/día", formatInt(e.Pacing.ReqDiamondsPerDay))
	if e.Pacing.ReqHoursPerDay > 0 {
		fmt.Fprintf(&b, " · %.1f horas/día", e.Pacing.ReqHoursPerDay)
	}
	fmt.Fprintf(&b, " en los %d días restantes.\n", e.Pacing.DaysRemaining)
	return b.String()
}

// composeManagerMessage renders the operational report: checklists, daily
// requirements, the active tier's traffic light, and the recommended action
// keyed to it.
func composeManagerMessage(e *Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s — Reporte del mes\n\n", e.Creator.Name)
	fmt.Fprintf(&b, "LIVE mes: %dd / %.1fh / %s 💎\n", e.Aggregate.DaysLive, e.Aggregate.HoursLive, formatInt(e.Aggregate.DiamondsLive))
	fmt.Fprintf(&b, "Restan: %d días\n\n", e.Pacing.DaysRemaining)

	b.WriteString("Hitos:\n")
	for _, m := range models.TimeMilestones {
		b.WriteString(checkMark(m.SatisfiedBy(e.Aggregate.DaysLive, e.Aggregate.HoursLive)))
		fmt.Fprintf(&b, " %s\n", m.Label())
	}

	b.WriteString("\nGraduaciones:\n")
	for _, tier := range e.Pacing.TierStatuses {
		fmt.Fprintf(&b, "%s %s %s\n", checkMark(tier.Achieved), tier.Status.Glyph(), tier.Label)
	}

	fmt.Fprintf(&b, "\nRequerido/día: %s diam · %.1fh\n",
		formatInt(e.Pacing.ReqDiamondsPerDay), e.Pacing.ReqHoursPerDay)
	fmt.Fprintf(&b, "Bono: %d días extra ⇒ $%d USD\n", e.ExtraDays, e.BonusUSD)

	light := activeTrafficLight(e)
	fmt.Fprintf(&b, "\n%s Acción recomendada: %s\n", light.Glyph(), recommendedAction(light))

	if e.Progress.Priority300k {
		b.WriteString("⚠️ PRIORIDAD: alcanzar 300K\n")
	}
	if e.Progress.NearTarget {
		b.WriteString("🎯 Cerca del objetivo\n")
	}
	return b.String()
}

// activeTrafficLight returns the semaphore for the active graduation target.
// Maintenance creators have exceeded every tier and read green.
func activeTrafficLight(e *Evaluation) models.TrafficLight {
	if e.Progress.TargetType != models.TargetTypeGraduation {
		return models.TrafficLightGreen
	}
	for _, tier := range e.Pacing.TierStatuses {
		if tier.Threshold == e.Progress.TargetValue {
			return tier.Status
		}
	}
	return models.TrafficLightGreen
}

func recommendedAction(light models.TrafficLight) string {
	switch light {
	case models.TrafficLightRed:
		return "contacto inmediato"
	case models.TrafficLightYellow:
		return "ajustar ritmo"
	default:
		return "monitoreo estándar"
	}
}

func nextTierAfter(threshold int64) int64 {
	for _, t := range models.GraduationTiers {
		if t > threshold {
			return t
		}
	}
	return 0
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// formatInt renders an integer with thousands separators, e.g. 300000 →
// "300,000", matching the number style the product shows everywhere.
func formatInt(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}
