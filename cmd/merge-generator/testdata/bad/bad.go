package bad

//merge:derive
type Settings struct {
	Name string `merge:"skp"`
	Port int
}
