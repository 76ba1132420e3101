package prereq_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/prereq"
)

func ExampleEngine_RecommendedPath() {
	subjects := []curriculum.Subject{
		{Code: "GAL1", Name: "Geometría y Álgebra Lineal 1", Semester: 1},
		{Code: "CDIV", Name: "Cálculo Diferencial e Integral en una Variable", Semester: 1},
		{Code: "CDIVV", Name: "Cálculo Diferencial e Integral en Varias Variables", Semester: 2,
			Requirements: []curriculum.Requirement{
				curriculum.AllOf{Conditions: []curriculum.Simple{curriculum.CourseOnly("CDIV"), curriculum.CourseOnly("GAL1")}},
			}},
		{Code: "ECUDIF", Name: "Ecuaciones Diferenciales", Semester: 3,
			Requirements: []curriculum.Requirement{curriculum.CourseOnly("CDIVV")}},
	}

	engine, _ := prereq.New(subjects, prereq.WithLogger(log.New(io.Discard)))
	engine.SetApprovalState("GAL1", true, false)

	path := engine.RecommendedPath("ECUDIF")
	for _, s := range path.AvailableNow {
		fmt.Println("now:", s.Code)
	}
	for _, s := range path.PendingPrerequisites {
		fmt.Println("later:", s.Code)
	}
	// Output:
	// now: CDIV
	// later: CDIVV
}

func ExampleEngine_Explain() {
	subjects := []curriculum.Subject{
		{Code: "P1", Name: "Programación 1"},
		{Code: "P2", Name: "Programación 2", Requirements: []curriculum.Requirement{curriculum.ExonerationOnly("P1")}},
	}

	engine, _ := prereq.New(subjects, prereq.WithLogger(log.New(io.Discard)))
	fmt.Println(engine.Explain("P2"))
	// Output:
	// Para poder cursar Programación 2 se necesita cumplir con:
	//
	// **Requisito 1:** Exonerar **Programación 1**
}
