package value

// Equal implements spec §4.1 equality: numeric pairs compare numerically
// regardless of Integer/Float; same non-numeric tag compares payload;
// String and Bytes of identical bytes are NOT equal (different tags, per
// spec §9's open-question resolution); everything else is false.
func Equal(a, b Value) bool {
	aNum := a.tag == Integer || a.tag == Float
	bNum := b.tag == Integer || b.tag == Float
	if aNum && bNum {
		return numeric(a) == numeric(b)
	}
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Null:
		return true
	case String, Bytes:
		return string(a.bytes) == string(b.bytes)
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Map:
		if len(a.m) != len(b.m) {
			return false
		}
		ae, be := sortedEntries(a.m), sortedEntries(b.m)
		for i := range ae {
			if !Equal(ae[i].key, be[i].key) || !Equal(ae[i].val, be[i].val) {
				return false
			}
		}
		return true
	case ResourceTag:
		return a.res == b.res
	default:
		return false
	}
}
