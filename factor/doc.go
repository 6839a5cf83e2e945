package factor

// Package factor implements the classical post-processing half of Shor's
// factoring algorithm: modulus validation, random coprime base selection,
// and the reduction of a multiplicative period r (a^r ≡ 1 mod N) to a
// nontrivial divisor pair of N via gcd(N, a^(r/2) ∓ 1).
//
// Period finding itself is delegated to an oracle.PeriodFinder; this
// package never models quantum state, circuits, or measurement.
