package game

import "fmt"

const (
	chargeBonus        = 10
	emergencyFundsGold = 20
)

// SpecialResult reports what a special action did.
type SpecialResult struct {
	Name         string `json:"name"`
	TargetID     string `json:"targetId,omitempty"`
	Damage       int    `json:"damage,omitempty"`
	Destroyed    bool   `json:"destroyed,omitempty"`
	Credited     Bundle `json:"credited,omitempty"`
	DefenseBonus int    `json:"defenseBonus,omitempty"`
}

// UnitSpecial performs the unit kind's special action. targetID is ignored by
// Shield Wall and required by Precision Shot and Charge.
func (g *Game) UnitSpecial(unitID, targetID string) (SpecialResult, error) {
	u := g.units[unitID]
	if u == nil {
		return SpecialResult{}, ErrInvalidTarget
	}
	if err := g.checkActor(u.Owner); err != nil {
		return SpecialResult{}, err
	}
	if u.HasActed {
		return SpecialResult{}, ErrAlreadyActed
	}

	stats := unitStats[u.Kind]
	res := SpecialResult{Name: stats.Special}

	switch u.Kind {
	case UnitSoldier:
		u.ShieldWall = true
		u.HasActed = true
		res.DefenseBonus = shieldWallBonus
		g.emit(u.Owner, EventSpecial, "%s raised a shield wall", u.Kind)
		return res, nil

	case UnitArcher, UnitCavalry:
		target := g.units[targetID]
		if err := checkAttack(u, target); err != nil {
			return SpecialResult{}, err
		}

		var dmg int
		if u.Kind == UnitArcher {
			dmg = u.Attack - target.EffectiveDefense()/2
		} else {
			dmg = u.Attack + chargeBonus - target.EffectiveDefense()
		}
		if dmg < 1 {
			dmg = 1
		}

		u.HasActed = true
		res.TargetID = target.ID
		res.Damage = dmg
		g.emit(u.Owner, EventSpecial, "%s used %s on %s for %d", u.Kind, stats.Special, target.Kind, dmg)
		res.Destroyed = g.damageUnit(target, dmg)
		return res, nil

	default:
		return SpecialResult{}, ErrInvalidAction
	}
}

// BuildingSpecial performs the building kind's special action, once per turn.
func (g *Game) BuildingSpecial(buildingID string) (SpecialResult, error) {
	b := g.buildings[buildingID]
	if b == nil {
		return SpecialResult{}, ErrInvalidTarget
	}
	if err := g.checkActor(b.Owner); err != nil {
		return SpecialResult{}, err
	}

	var credit Bundle
	switch b.Kind {
	case BuildingCommandCenter:
		credit = Bundle{ResourceGold: emergencyFundsGold}
	case BuildingFarm:
		credit = Bundle{ResourceFood: b.Production[ResourceFood]}
	default:
		return SpecialResult{}, fmt.Errorf("%s has no special: %w", b.Kind, ErrInvalidAction)
	}

	if !b.Built {
		return SpecialResult{}, ErrNotBuilt
	}
	if b.UsedSpecial {
		return SpecialResult{}, ErrAlreadyActed
	}

	g.players[b.Owner].Stockpile.AddBundle(credit)
	b.UsedSpecial = true

	stats := buildingStats[b.Kind]
	g.emit(b.Owner, EventSpecial, "%s used %s: %s", b.Kind, stats.Special, credit.String())
	return SpecialResult{Name: stats.Special, Credited: credit}, nil
}
