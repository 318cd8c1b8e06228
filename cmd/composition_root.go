package cmd

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"gorm.io/gorm"
)

// CompositionRoot wires the persistence adapters into the application
// use cases. All handlers are constructed eagerly so a misconfiguration
// fails at startup, not on the first request.
type CompositionRoot struct {
	gormDB *gorm.DB

	registerParcelHandler        commands.RegisterParcelCommandHandler
	createDemandHandler          commands.CreateDemandCommandHandler
	reviewDemandHandler          commands.ReviewDemandCommandHandler
	deleteDemandHandler          commands.DeleteDemandCommandHandler
	createPickupMissionHandler   commands.CreatePickupMissionCommandHandler
	updatePickupStatusHandler    commands.UpdatePickupMissionStatusCommandHandler
	createDeliveryMissionHandler commands.CreateDeliveryMissionCommandHandler
	resolveDeliveryHandler       commands.ResolveDeliveryCommandHandler
	overrideParcelStatusHandler  commands.OverrideParcelStatusCommandHandler
	expireOverdueHandler         commands.ExpireOverduePickupMissionsCommandHandler
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var demandFactory commands.DemandUoWFactory = FuncDemandUoWFactory(func() commands.DemandUoW {
		return uowFactory.Create()
	})
	var missionFactory commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})

	systemActorID, err := kernel.UUIDFromString(configs.SystemActorID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("parse system actor id: %w", err)
	}

	codeGenerator := services.NewSecurityCodeGenerator()

	registerParcelHandler, err := commands.NewRegisterParcelCommandHandler(missionFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create register parcel handler: %w", err)
	}

	createDemandHandler, err := commands.NewCreateDemandCommandHandler(demandFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create demand intake handler: %w", err)
	}

	reviewDemandHandler, err := commands.NewReviewDemandCommandHandler(demandFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create demand review handler: %w", err)
	}

	deleteDemandHandler, err := commands.NewDeleteDemandCommandHandler(demandFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create demand delete handler: %w", err)
	}

	createPickupMissionHandler, err := commands.NewCreatePickupMissionCommandHandler(missionFactory, codeGenerator)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pickup mission handler: %w", err)
	}

	completePickupHandler, err := commands.NewCompletePickupMissionCommandHandler(missionFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pickup completion handler: %w", err)
	}

	updatePickupStatusHandler, err := commands.NewUpdatePickupMissionStatusCommandHandler(
		missionFactory, completePickupHandler)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pickup status handler: %w", err)
	}

	createDeliveryMissionHandler, err := commands.NewCreateDeliveryMissionCommandHandler(missionFactory, codeGenerator)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create delivery mission handler: %w", err)
	}

	resolveDeliveryHandler, err := commands.NewResolveDeliveryCommandHandler(missionFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create delivery resolution handler: %w", err)
	}

	overrideParcelStatusHandler, err := commands.NewOverrideParcelStatusCommandHandler(missionFactory)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create parcel override handler: %w", err)
	}

	expireOverdueHandler, err := commands.NewExpireOverduePickupMissionsCommandHandler(missionFactory, systemActorID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create mission expiry handler: %w", err)
	}

	return CompositionRoot{
		gormDB:                       gormDB,
		registerParcelHandler:        registerParcelHandler,
		createDemandHandler:          createDemandHandler,
		reviewDemandHandler:          reviewDemandHandler,
		deleteDemandHandler:          deleteDemandHandler,
		createPickupMissionHandler:   createPickupMissionHandler,
		updatePickupStatusHandler:    updatePickupStatusHandler,
		createDeliveryMissionHandler: createDeliveryMissionHandler,
		resolveDeliveryHandler:       resolveDeliveryHandler,
		overrideParcelStatusHandler:  overrideParcelStatusHandler,
		expireOverdueHandler:         expireOverdueHandler,
	}, nil
}

func (c CompositionRoot) RegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	return c.registerParcelHandler
}

func (c CompositionRoot) CreateDemandCommandHandler() commands.CreateDemandCommandHandler {
	return c.createDemandHandler
}

func (c CompositionRoot) ReviewDemandCommandHandler() commands.ReviewDemandCommandHandler {
	return c.reviewDemandHandler
}

func (c CompositionRoot) DeleteDemandCommandHandler() commands.DeleteDemandCommandHandler {
	return c.deleteDemandHandler
}

func (c CompositionRoot) CreatePickupMissionCommandHandler() commands.CreatePickupMissionCommandHandler {
	return c.createPickupMissionHandler
}

func (c CompositionRoot) UpdatePickupMissionStatusCommandHandler() commands.UpdatePickupMissionStatusCommandHandler {
	return c.updatePickupStatusHandler
}

func (c CompositionRoot) CreateDeliveryMissionCommandHandler() commands.CreateDeliveryMissionCommandHandler {
	return c.createDeliveryMissionHandler
}

func (c CompositionRoot) ResolveDeliveryCommandHandler() commands.ResolveDeliveryCommandHandler {
	return c.resolveDeliveryHandler
}

func (c CompositionRoot) OverrideParcelStatusCommandHandler() commands.OverrideParcelStatusCommandHandler {
	return c.overrideParcelStatusHandler
}

func (c CompositionRoot) ExpireOverduePickupMissionsCommandHandler() commands.ExpireOverduePickupMissionsCommandHandler {
	return c.expireOverdueHandler
}

func (c CompositionRoot) TrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c CompositionRoot) GetPickupMissionQueryHandler() queries.GetPickupMissionQueryHandler {
	return queries.NewGetPickupMissionQueryHandler(c.gormDB)
}

func (c CompositionRoot) GetMissionSecurityCodeQueryHandler() queries.GetMissionSecurityCodeQueryHandler {
	return queries.NewGetMissionSecurityCodeQueryHandler(c.gormDB)
}

func (c CompositionRoot) GetDepotParcelsQueryHandler() queries.GetDepotParcelsQueryHandler {
	return queries.NewGetDepotParcelsQueryHandler(c.gormDB)
}

type FuncDemandUoWFactory func() commands.DemandUoW

func (f FuncDemandUoWFactory) Create() commands.DemandUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
