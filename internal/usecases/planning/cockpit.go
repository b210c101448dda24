package planning

import (
	"fmt"
	"math"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/utils"
)

type CockpitState string

const (
	StateNoGoal  CockpitState = "no-goal"
	StateTracked CockpitState = "tracked"
)

const NoGoalCTA = "Set a yearly goal to start tracking your trajectory"

// Cockpit é a visão pronta para exibição da meta anual de um ano fiscal
type Cockpit struct {
	State      CockpitState           `json:"state"`
	Year       int                    `json:"year"`
	CTA        string                 `json:"cta,omitempty"`
	Icon       string                 `json:"icon,omitempty"`
	Color      string                 `json:"color,omitempty"`
	Headline   string                 `json:"headline,omitempty"`
	Progress   *domain.GoalProgress   `json:"progress,omitempty"`
	Trajectory *domain.GoalTrajectory `json:"trajectory,omitempty"`
	Gap        *Gap                   `json:"gap,omitempty"`
}

type statusStyle struct {
	icon  string
	color string
}

var statusStyles = map[domain.TrajectoryStatus]statusStyle{
	domain.TrajectoryAhead:    {icon: "trending-up", color: "green"},
	domain.TrajectoryOnTrack:  {icon: "target", color: "blue"},
	domain.TrajectoryAtRisk:   {icon: "alert-triangle", color: "amber"},
	domain.TrajectoryCritical: {icon: "alert-octagon", color: "red"},
}

// BuildCockpit monta a visão do cockpit. Sem meta definida o estado é "no-goal" com a chamada para ação.
func BuildCockpit(year int, progress *domain.GoalProgress) Cockpit {
	if !progress.HasGoal() {
		return Cockpit{
			State:    StateNoGoal,
			Year:     year,
			CTA:      NoGoalCTA,
			Progress: progress,
		}
	}

	trajectory := ComputeTrajectory(progress)
	style := statusStyles[trajectory.Status]

	return Cockpit{
		State:      StateTracked,
		Year:       year,
		Icon:       style.icon,
		Color:      style.color,
		Headline:   Headline(trajectory),
		Progress:   progress,
		Trajectory: trajectory,
		Gap:        GapBreakdown(progress),
	}
}

// Headline descreve a diferença projetada: falta quando positiva, excedente caso contrário
func Headline(trajectory *domain.GoalTrajectory) string {
	if trajectory.Shortfall > 0 {
		return fmt.Sprintf("Projected shortfall of %s", utils.FormatCompactINR(trajectory.Shortfall))
	}
	return fmt.Sprintf("On track to exceed goal by %s", utils.FormatCompactINR(math.Abs(trajectory.Shortfall)))
}
