package game

import "math"

// PredictiveAim returns where to aim so a bullet at projectileSpeed meets a
// target moving at targetVel. A still or very close target is aimed at directly.
func PredictiveAim(shooter, target, targetVel Vec3, projectileSpeed float64) Vec3 {
	if targetVel.Length() < 0.1 || !(projectileSpeed > 0) {
		return target
	}

	distance := target.Distance(shooter)
	if distance < 1.0 {
		return target
	}

	// Refine the time of flight t until |target + vel*t - shooter| = speed*t
	t := distance / projectileSpeed
	for i := 0; i < 5; i++ {
		predicted := target.Add(targetVel.Scale(t))
		newT := predicted.Distance(shooter) / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			break
		}
		t = newT
	}

	return target.Add(targetVel.Scale(t))
}
