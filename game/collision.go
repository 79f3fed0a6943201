package game

import "math"

// Contact describes one tick of aircraft-vs-surface contact
type Contact struct {
	// SurfaceHeight is the altitude the aircraft was pushed up to
	SurfaceHeight float64
	Damage        float64
	Killed        bool
}

// MaxSurfaceAround returns the highest surface under (x, z) and at samples
// points evenly spaced on a circle of the given radius.
func MaxSurfaceAround(field *HeightField, x, z, radius float64, samples int) float64 {
	maxHeight := field.SurfaceHeightAt(x, z)
	if samples < 1 {
		return maxHeight
	}

	for i := 0; i < samples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(samples)
		sampleX := x + radius*math.Cos(angle)
		sampleZ := z + radius*math.Sin(angle)
		maxHeight = math.Max(maxHeight, field.SurfaceHeightAt(sampleX, sampleZ))
	}

	return maxHeight
}

// ResolveTerrainCollision pushes an aircraft that sank below the probed
// surface back up, drains health and bleeds speed. It reports false when
// there was no contact.
func ResolveTerrainCollision(a *Aircraft, field *HeightField, cfg CollisionConfig) (Contact, bool) {
	if a == nil || field == nil || !a.IsAlive {
		return Contact{}, false
	}

	radius := a.ColliderRadius + cfg.ProbeMargin
	safeHeight := MaxSurfaceAround(field, a.Position.X, a.Position.Z, radius, cfg.Samples)

	// NaN altitude compares false, so treat it as buried too
	if !(a.Position.Y >= safeHeight) {
		a.Position.Y = safeHeight
		killed := a.ApplyDamage(cfg.DamagePerTick)
		a.Speed *= cfg.SpeedDamping
		return Contact{
			SurfaceHeight: safeHeight,
			Damage:        cfg.DamagePerTick,
			Killed:        killed,
		}, true
	}

	return Contact{}, false
}

// ClearanceAhead returns the altitude margin over the surface a distance
// ahead of the aircraft along its heading.
func ClearanceAhead(a *Aircraft, field *HeightField, distance float64) float64 {
	if field == nil {
		return math.Inf(1)
	}
	probe := a.Position.Add(a.Forward().Scale(distance))
	return probe.Y - field.SurfaceHeightAt(probe.X, probe.Z)
}
