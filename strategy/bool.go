package strategy

// OverwriteFalse overwrites left with right if left is false.
func OverwriteFalse[B ~bool](left *B, right B) {
	if !*left {
		*left = right
	}
}

// OverwriteTrue overwrites left with right if left is true.
func OverwriteTrue[B ~bool](left *B, right B) {
	if *left {
		*left = right
	}
}
