// Package catalog wires the six entity repositories and services over one gorm handle.
package catalog

import (
	"gorm.io/gorm"

	"astro/entities"
	"astro/pkg/catalog/repository"
	"astro/pkg/catalog/repositoryImp"
	"astro/pkg/catalog/service"
	"astro/pkg/catalog/serviceImp"
)

type Services struct {
	Types        service.Service[entities.Type]
	Properties   service.Service[entities.Property]
	Places       service.Service[entities.Place]
	Instruments  service.Service[entities.Instrument]
	Objects      service.Service[entities.Object]
	Observations service.ObservationService
}

func NewServices(db *gorm.DB) Services {
	objects := repositoryImp.New(db, repository.Objects)
	places := repositoryImp.New(db, repository.Places)
	instruments := repositoryImp.New(db, repository.Instruments)

	return Services{
		Types:        serviceImp.New(repositoryImp.New(db, repository.Types)),
		Properties:   serviceImp.New(repositoryImp.New(db, repository.Properties)),
		Places:       serviceImp.New(places),
		Instruments:  serviceImp.New(instruments),
		Objects:      serviceImp.New(objects),
		Observations: serviceImp.NewObservationService(repositoryImp.NewObservationRepository(db), objects, places, instruments),
	}
}
